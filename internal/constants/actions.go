package constants

// Action tags recorded in the activity log, one per mutation.
const (
	AddBook    = "ADD_BOOK"
	EditBook   = "EDIT_BOOK"
	DeleteBook = "DELETE_BOOK"

	AddMember    = "ADD_MEMBER"
	EditMember   = "EDIT_MEMBER"
	DeleteMember = "DELETE_MEMBER"

	LoanBook   = "LOAN_BOOK"
	EditLoan   = "EDIT_LOAN"
	DeleteLoan = "DELETE_LOAN"
)
