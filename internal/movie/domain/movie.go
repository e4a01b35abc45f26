package domain

type Genre struct {
	Name        string
	Description string
}

type Director struct {
	Name      string
	Bio       string
	BirthYear int
	DeathYear *int
}

type Movie struct {
	ID          string
	Title       string
	Description string
	Genre       Genre
	Director    Director
	ImagePath   string
	Featured    bool
}
