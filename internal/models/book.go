package models

type Book struct {
	ID        int64  `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year_published"`
	Genre     string `json:"genre"`
}
