package models

// DateLayout is the wire format for loan dates. ISO dates compare
// lexicographically in chronological order, which the store relies on.
const DateLayout = "2006-01-02"

type Loan struct {
	ID         int64  `json:"loan_id"`
	BookID     int64  `json:"book_id"`
	MemberID   int64  `json:"member_id"`
	LoanDate   string `json:"loan_date"`
	ReturnDate string `json:"return_date"`
}

// LoanDetail is a loan joined with its book title and member name for
// the dashboard listing.
type LoanDetail struct {
	Loan
	BookTitle  string `json:"title"`
	MemberName string `json:"name"`
}
