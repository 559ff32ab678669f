package store

import (
	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

// CreateMember inserts the member, returning ErrEmailExists when the
// unique index on email rejects the row.
func (s *Store) CreateMember(m models.Member) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO members (name, email, phone, address) VALUES (?, ?, ?, ?)`,
		m.Name, m.Email, m.Phone, m.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateMember replaces all mutable fields. Email uniqueness is not
// re-checked on edit; a conflicting index violation surfaces as
// ErrEmailExists.
func (s *Store) UpdateMember(m models.Member) error {
	_, err := s.db.Exec(
		`UPDATE members SET name=?, email=?, phone=?, address=? WHERE member_id=?`,
		m.Name, m.Email, m.Phone, m.Address, m.ID,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

func (s *Store) DeleteMember(id int64) error {
	_, err := s.db.Exec(`DELETE FROM members WHERE member_id = ?`, id)
	return err
}

// ListMembers returns all members, newest first.
func (s *Store) ListMembers() ([]models.Member, error) {
	rows, err := s.db.Query(
		`SELECT member_id, name, email, phone, address FROM members ORDER BY member_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) CountMembersByEmail(email string) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM members WHERE email = ?`, email).Scan(&n)
	return n, err
}

// CountActiveLoansByMember counts loans for the member with a return
// date on or after today.
func (s *Store) CountActiveLoansByMember(memberID int64, today string) (int64, error) {
	var n int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM loans WHERE member_id = ? AND return_date >= ?`,
		memberID, today,
	).Scan(&n)
	return n, err
}
