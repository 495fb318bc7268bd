package library

// Book is a catalog entry identified by its ISBN.
type Book struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	ISBN        string `json:"isbn" yaml:"isbn"`
	IsAvailable bool   `json:"isAvailable" yaml:"isAvailable"`
}

// NewBook returns an available book.
func NewBook(title, author, isbn string) Book {
	return Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		IsAvailable: true,
	}
}
