// Package commands turns the untyped mutation form into one of nine
// typed command values before any business logic runs.
package commands

import "github.com/Patrickdwa/PatrickBooks/internal/constants"

// Command is the closed set of dashboard mutations.
type Command interface {
	// Action is the audit action tag for the command.
	Action() string
}

type AddBook struct {
	Title     string
	Author    string
	Publisher string
	Year      int
	Genre     string
}

type EditBook struct {
	ID        int64
	Title     string
	Author    string
	Publisher string
	Year      int
	Genre     string
}

type DeleteBook struct {
	ID int64
}

type AddMember struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type EditMember struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

type DeleteMember struct {
	ID int64
}

type AddLoan struct {
	BookID     int64
	MemberID   int64
	LoanDate   string
	ReturnDate string
}

type EditLoan struct {
	ID         int64
	LoanDate   string
	ReturnDate string
}

type DeleteLoan struct {
	ID int64
}

func (AddBook) Action() string      { return constants.AddBook }
func (EditBook) Action() string     { return constants.EditBook }
func (DeleteBook) Action() string   { return constants.DeleteBook }
func (AddMember) Action() string    { return constants.AddMember }
func (EditMember) Action() string   { return constants.EditMember }
func (DeleteMember) Action() string { return constants.DeleteMember }
func (AddLoan) Action() string      { return constants.LoanBook }
func (EditLoan) Action() string     { return constants.EditLoan }
func (DeleteLoan) Action() string   { return constants.DeleteLoan }
