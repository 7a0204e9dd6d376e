package domain

// Article is a provider article reduced to plain text.
type Article struct {
	ID   string
	Body string
}
