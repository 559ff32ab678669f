package commands

import (
	"net/url"
	"strconv"
	"strings"
)

// Parse maps the submitted form to a typed command. String fields are
// trimmed and numeric fields coerced, with 0 standing in for anything
// unparseable; all fields are mandatory at the form level, so blanks
// only occur on hand-crafted requests. An unrecognized or missing
// action returns nil: the request is silently a no-op.
func Parse(form url.Values) Command {
	field := func(name string) string { return strings.TrimSpace(form.Get(name)) }
	num := func(name string) int64 {
		n, _ := strconv.ParseInt(field(name), 10, 64)
		return n
	}

	switch form.Get("action") {
	case "add_book":
		return AddBook{
			Title:     field("title"),
			Author:    field("author"),
			Publisher: field("publisher"),
			Year:      int(num("year_published")),
			Genre:     field("genre"),
		}
	case "edit_book":
		return EditBook{
			ID:        num("book_id"),
			Title:     field("title"),
			Author:    field("author"),
			Publisher: field("publisher"),
			Year:      int(num("year_published")),
			Genre:     field("genre"),
		}
	case "delete_book":
		return DeleteBook{ID: num("id")}
	case "add_member":
		return AddMember{
			Name:    field("name"),
			Email:   field("email"),
			Phone:   field("phone"),
			Address: field("address"),
		}
	case "edit_member":
		return EditMember{
			ID:      num("member_id"),
			Name:    field("name"),
			Email:   field("email"),
			Phone:   field("phone"),
			Address: field("address"),
		}
	case "delete_member":
		return DeleteMember{ID: num("id")}
	case "add_loan":
		return AddLoan{
			BookID:     num("book_id"),
			MemberID:   num("member_id"),
			LoanDate:   field("loan_date"),
			ReturnDate: field("return_date"),
		}
	case "edit_loan":
		return EditLoan{
			ID:         num("loan_id"),
			LoanDate:   field("loan_date"),
			ReturnDate: field("return_date"),
		}
	case "delete_loan":
		return DeleteLoan{ID: num("id")}
	}
	return nil
}
