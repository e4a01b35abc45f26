package domain

import "time"

type ID string

// User is the system-of-record principal. Username is unique and immutable
// once assigned; PasswordHash is never serialized or logged.
type User struct {
	ID             ID
	Username       string
	PasswordHash   string
	Email          string
	Birthday       *time.Time
	FavoriteMovies []string
	CreatedAt      time.Time
}
