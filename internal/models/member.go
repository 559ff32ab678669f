package models

import "net/mail"

type Member struct {
	ID      int64  `json:"member_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// IsValidEmail reports whether s is a plain, well-formed address.
// Display-name forms like "Alice <a@b.c>" are rejected.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
