package constants

import "time"

const (
	UsernameMinLength  = 3
	UsernameMaxLength  = 32
	PasswordMinLength  = 6
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32

	// Tokens are valid for exactly seven days from issuance and are neither
	// renewable nor revocable before expiry.
	TokenTTL = 7 * 24 * time.Hour

	DefaultMaxRequestSize = 1 << 20

	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 10 * time.Second
	ServerWriteTimeout      = 10 * time.Second
	ServerIdleTimeout       = 60 * time.Second

	DBPoolMetricsInterval = 30 * time.Second
)

type ContextKey string

const TraceIDKey ContextKey = "trace_id"
