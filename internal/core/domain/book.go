package domain

// Book is a catalog entry. CoverRef and DocumentRef are asset references
// produced by the asset store.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Author      string `json:"autor"`
	Category    string `json:"categoria"`
	CoverRef    string `json:"imagen_url"`
	DocumentRef string `json:"pdf_url"`
}

// BookFilter narrows ListBooks. Zero value lists the whole catalog.
type BookFilter struct {
	Search   string // case-insensitive substring on title, author or category
	Category string // case-insensitive exact match
}
