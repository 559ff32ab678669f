// Package library holds the mutation pipeline: per-command business
// rules, the store write, and the best-effort audit append.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Patrickdwa/PatrickBooks/internal/audit"
	"github.com/Patrickdwa/PatrickBooks/internal/commands"
	"github.com/Patrickdwa/PatrickBooks/internal/constants"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
	"github.com/Patrickdwa/PatrickBooks/internal/store"
)

// ValidationError is a business-rule violation. Its text is the exact
// message shown to the user.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type Service struct {
	Store *store.Store
	Audit audit.Recorder

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Format(models.DateLayout)
}

// Execute runs one command to completion and translates any failure
// into a user-facing toast. Handler errors never propagate past here;
// the caller always proceeds to the redirect.
func (s *Service) Execute(ctx context.Context, cmd commands.Command, userIP string) models.Toast {
	toast, err := s.apply(ctx, cmd, userIP)
	if err == nil {
		return toast
	}

	var verr ValidationError
	if errors.As(err, &verr) {
		return models.Toast{Level: models.ToastDanger, Message: verr.Error()}
	}

	slog.Error("mutation failed", "action", cmd.Action(), "error", err)
	return models.Toast{Level: models.ToastDanger, Message: "Database operation failed."}
}

func (s *Service) apply(ctx context.Context, cmd commands.Command, userIP string) (models.Toast, error) {
	switch c := cmd.(type) {
	case commands.AddBook:
		return s.addBook(ctx, c, userIP)
	case commands.EditBook:
		return s.editBook(ctx, c, userIP)
	case commands.DeleteBook:
		return s.deleteBook(ctx, c, userIP)
	case commands.AddMember:
		return s.addMember(ctx, c, userIP)
	case commands.EditMember:
		return s.editMember(ctx, c, userIP)
	case commands.DeleteMember:
		return s.deleteMember(ctx, c, userIP)
	case commands.AddLoan:
		return s.addLoan(ctx, c, userIP)
	case commands.EditLoan:
		return s.editLoan(ctx, c, userIP)
	case commands.DeleteLoan:
		return s.deleteLoan(ctx, c, userIP)
	}
	return models.Toast{}, fmt.Errorf("unhandled command %T", cmd)
}

// record appends to the activity log. Append failure is diagnostic
// only; the mutation has already succeeded.
func (s *Service) record(ctx context.Context, action, description, userIP string) {
	details := map[string]any{"request_id": uuid.NewString()}
	if err := s.Audit.Record(ctx, action, description, details, userIP); err != nil {
		slog.Error("audit append failed", "action", action, "error", err)
	}
}

// --- Books ---

func (s *Service) addBook(ctx context.Context, c commands.AddBook, userIP string) (models.Toast, error) {
	_, err := s.Store.CreateBook(models.Book{
		Title:     c.Title,
		Author:    c.Author,
		Publisher: c.Publisher,
		Year:      c.Year,
		Genre:     c.Genre,
	})
	if err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.AddBook, "Added book: "+c.Title, userIP)
	return models.Toast{Level: models.ToastSuccess, Message: "Book added successfully!"}, nil
}

func (s *Service) editBook(ctx context.Context, c commands.EditBook, userIP string) (models.Toast, error) {
	err := s.Store.UpdateBook(models.Book{
		ID:        c.ID,
		Title:     c.Title,
		Author:    c.Author,
		Publisher: c.Publisher,
		Year:      c.Year,
		Genre:     c.Genre,
	})
	if err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.EditBook, fmt.Sprintf("Updated book ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastInfo, Message: "Book updated successfully."}, nil
}

func (s *Service) deleteBook(ctx context.Context, c commands.DeleteBook, userIP string) (models.Toast, error) {
	n, err := s.Store.CountOpenLoansByBook(c.ID, s.today())
	if err != nil {
		return models.Toast{}, err
	}
	if n > 0 {
		return models.Toast{}, ValidationError("Cannot delete: Book is currently on loan.")
	}
	if err := s.Store.DeleteBook(c.ID); err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.DeleteBook, fmt.Sprintf("Deleted book ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastWarning, Message: "Book deleted."}, nil
}

// --- Members ---

func (s *Service) addMember(ctx context.Context, c commands.AddMember, userIP string) (models.Toast, error) {
	if !models.IsValidEmail(c.Email) {
		return models.Toast{}, ValidationError("Invalid email address.")
	}
	n, err := s.Store.CountMembersByEmail(c.Email)
	if err != nil {
		return models.Toast{}, err
	}
	if n > 0 {
		return models.Toast{}, ValidationError("Email already exists.")
	}
	_, err = s.Store.CreateMember(models.Member{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	})
	if errors.Is(err, store.ErrEmailExists) {
		// The unique index lost a race the pre-check missed.
		return models.Toast{}, ValidationError("Email already exists.")
	}
	if err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.AddMember, "New member: "+c.Name, userIP)
	return models.Toast{Level: models.ToastSuccess, Message: "Member registered!"}, nil
}

func (s *Service) editMember(ctx context.Context, c commands.EditMember, userIP string) (models.Toast, error) {
	if !models.IsValidEmail(c.Email) {
		return models.Toast{}, ValidationError("Invalid email address.")
	}
	// Edits are trusted: uniqueness against other members is not
	// re-checked here, only by the store's index.
	err := s.Store.UpdateMember(models.Member{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	})
	if errors.Is(err, store.ErrEmailExists) {
		return models.Toast{}, ValidationError("Email already exists.")
	}
	if err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.EditMember, fmt.Sprintf("Updated member ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastInfo, Message: "Member details updated."}, nil
}

func (s *Service) deleteMember(ctx context.Context, c commands.DeleteMember, userIP string) (models.Toast, error) {
	n, err := s.Store.CountActiveLoansByMember(c.ID, s.today())
	if err != nil {
		return models.Toast{}, err
	}
	if n > 0 {
		return models.Toast{}, ValidationError("Member has active loans.")
	}
	if err := s.Store.DeleteMember(c.ID); err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.DeleteMember, fmt.Sprintf("Deleted member ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastWarning, Message: "Member removed."}, nil
}

// --- Loans ---

func (s *Service) addLoan(ctx context.Context, c commands.AddLoan, userIP string) (models.Toast, error) {
	if c.ReturnDate <= c.LoanDate {
		return models.Toast{}, ValidationError("Return date must be after loan date.")
	}
	_, err := s.Store.CreateLoan(models.Loan{
		BookID:     c.BookID,
		MemberID:   c.MemberID,
		LoanDate:   c.LoanDate,
		ReturnDate: c.ReturnDate,
	}, s.today())
	if errors.Is(err, store.ErrBookOnLoan) {
		return models.Toast{}, ValidationError("Book is already on loan.")
	}
	if err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.LoanBook, fmt.Sprintf("Loan created for Book ID: %d", c.BookID), userIP)
	return models.Toast{Level: models.ToastSuccess, Message: "Loan recorded!"}, nil
}

func (s *Service) editLoan(ctx context.Context, c commands.EditLoan, userIP string) (models.Toast, error) {
	if c.ReturnDate <= c.LoanDate {
		return models.Toast{}, ValidationError("Return date must be after loan date.")
	}
	// Date edits on an existing loan are trusted; exclusivity is not
	// re-checked.
	if err := s.Store.UpdateLoanDates(c.ID, c.LoanDate, c.ReturnDate); err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.EditLoan, fmt.Sprintf("Updated dates for Loan ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastInfo, Message: "Loan dates updated."}, nil
}

func (s *Service) deleteLoan(ctx context.Context, c commands.DeleteLoan, userIP string) (models.Toast, error) {
	// Deleting the loan is the return mechanism; always permitted.
	if err := s.Store.DeleteLoan(c.ID); err != nil {
		return models.Toast{}, err
	}
	s.record(ctx, constants.DeleteLoan, fmt.Sprintf("Deleted loan ID: %d", c.ID), userIP)
	return models.Toast{Level: models.ToastWarning, Message: "Loan record deleted."}, nil
}
