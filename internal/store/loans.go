package store

import (
	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

// CreateLoan inserts the loan only if the book has no open loan as of
// today. The insert and the exclusivity check are a single statement,
// so two concurrent requests for the same book cannot both succeed.
// Returns ErrBookOnLoan when the book is taken.
func (s *Store) CreateLoan(l models.Loan, today string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO loans (book_id, member_id, loan_date, return_date)
         SELECT ?, ?, ?, ?
         WHERE NOT EXISTS (
             SELECT 1 FROM loans WHERE book_id = ? AND return_date >= ?
         )`,
		l.BookID, l.MemberID, l.LoanDate, l.ReturnDate, l.BookID, today,
	)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrBookOnLoan
	}
	return res.LastInsertId()
}

// UpdateLoanDates rewrites the loan and return dates of an existing
// loan. Exclusivity is not re-checked here.
func (s *Store) UpdateLoanDates(id int64, loanDate, returnDate string) error {
	_, err := s.db.Exec(
		`UPDATE loans SET loan_date=?, return_date=? WHERE loan_id=?`,
		loanDate, returnDate, id,
	)
	return err
}

// DeleteLoan removes the loan record. This is the sole return
// mechanism; there is no separate returned flag.
func (s *Store) DeleteLoan(id int64) error {
	_, err := s.db.Exec(`DELETE FROM loans WHERE loan_id = ?`, id)
	return err
}

// ListLoans returns all loans joined with book title and member name,
// newest first.
func (s *Store) ListLoans() ([]models.LoanDetail, error) {
	rows, err := s.db.Query(
		`SELECT l.loan_id, l.book_id, l.member_id, l.loan_date, l.return_date, b.title, m.name
         FROM loans l
         JOIN books b ON l.book_id = b.book_id
         JOIN members m ON l.member_id = m.member_id
         ORDER BY l.loan_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []models.LoanDetail
	for rows.Next() {
		var l models.LoanDetail
		if err := rows.Scan(&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.ReturnDate, &l.BookTitle, &l.MemberName); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// Counts reports the table totals shown on the dashboard. Active loans
// are those with a return date on or after today.
func (s *Store) Counts(today string) (books, members, activeLoans int64, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&books); err != nil {
		return
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&members); err != nil {
		return
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM loans WHERE return_date >= ?`, today).Scan(&activeLoans)
	return
}
