package store

import (
	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

func (s *Store) CreateBook(b models.Book) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO books (title, author, publisher, year_published, genre) VALUES (?, ?, ?, ?, ?)`,
		b.Title, b.Author, b.Publisher, b.Year, b.Genre,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateBook replaces all mutable fields of the book.
func (s *Store) UpdateBook(b models.Book) error {
	_, err := s.db.Exec(
		`UPDATE books SET title=?, author=?, publisher=?, year_published=?, genre=? WHERE book_id=?`,
		b.Title, b.Author, b.Publisher, b.Year, b.Genre, b.ID,
	)
	return err
}

func (s *Store) DeleteBook(id int64) error {
	_, err := s.db.Exec(`DELETE FROM books WHERE book_id = ?`, id)
	return err
}

// ListBooks returns all books, newest first.
func (s *Store) ListBooks() ([]models.Book, error) {
	rows, err := s.db.Query(
		`SELECT book_id, title, author, publisher, year_published, genre FROM books ORDER BY book_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.Genre); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CountOpenLoansByBook counts loans for the book whose return date has
// not yet passed. A NULL return date counts as open.
func (s *Store) CountOpenLoansByBook(bookID int64, today string) (int64, error) {
	var n int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM loans WHERE book_id = ? AND (return_date >= ? OR return_date IS NULL)`,
		bookID, today,
	).Scan(&n)
	return n, err
}
