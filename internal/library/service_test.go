package library_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Patrickdwa/PatrickBooks/internal/audit"
	"github.com/Patrickdwa/PatrickBooks/internal/commands"
	"github.com/Patrickdwa/PatrickBooks/internal/constants"
	"github.com/Patrickdwa/PatrickBooks/internal/library"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
	"github.com/Patrickdwa/PatrickBooks/internal/store"
)

// memRecorder captures appended entries for assertions.
type memRecorder struct {
	actions []string
}

func (r *memRecorder) Record(_ context.Context, action, _ string, _ map[string]any, _ string) error {
	r.actions = append(r.actions, action)
	return nil
}

// failRecorder simulates an unreachable log store.
type failRecorder struct{}

func (failRecorder) Record(context.Context, string, string, map[string]any, string) error {
	return errors.New("log store unreachable")
}

var fixedNow = func() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newService(t *testing.T, rec audit.Recorder) (*library.Service, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return &library.Service{Store: s, Audit: rec, Now: fixedNow}, s
}

func seedBook(t *testing.T, s *store.Store) int64 {
	t.Helper()
	id, err := s.CreateBook(models.Book{Title: "Dune", Author: "Herbert", Publisher: "Ace", Year: 1965, Genre: "SciFi"})
	if err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return id
}

func seedMember(t *testing.T, s *store.Store, email string) int64 {
	t.Helper()
	id, err := s.CreateMember(models.Member{Name: "Alice", Email: email, Phone: "555-0100", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return id
}

func TestAddBook(t *testing.T) {
	rec := &memRecorder{}
	svc, st := newService(t, rec)

	toast := svc.Execute(context.Background(), commands.AddBook{
		Title: "Dune", Author: "Herbert", Publisher: "Ace", Year: 1965, Genre: "SciFi",
	}, "203.0.113.7")

	if toast.Level != models.ToastSuccess || toast.Message != "Book added successfully!" {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	books, _ := st.ListBooks()
	if len(books) != 1 {
		t.Fatalf("want 1 book, got %d", len(books))
	}
	if len(rec.actions) != 1 || rec.actions[0] != constants.AddBook {
		t.Errorf("want audit action %q, got %v", constants.AddBook, rec.actions)
	}
}

func TestDeleteBookOnLoan(t *testing.T) {
	rec := &memRecorder{}
	svc, st := newService(t, rec)
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	if _, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-06-10", ReturnDate: "2024-06-20"}, "2024-06-15"); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.DeleteBook{ID: bookID}, "")

	if toast.Level != models.ToastDanger || toast.Message != "Cannot delete: Book is currently on loan." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if books, _ := st.ListBooks(); len(books) != 1 {
		t.Error("book deleted despite open loan")
	}
	if len(rec.actions) != 0 {
		t.Errorf("rejected delete must not log, got %v", rec.actions)
	}
}

func TestDeleteBookWithoutOpenLoan(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	// Loan already returned before today.
	if _, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-05-01", ReturnDate: "2024-05-10"}, "2024-06-15"); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.DeleteBook{ID: bookID}, "")

	if toast.Level != models.ToastWarning || toast.Message != "Book deleted." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if books, _ := st.ListBooks(); len(books) != 0 {
		t.Error("book not deleted")
	}
}

func TestAddMemberInvalidEmail(t *testing.T) {
	svc, st := newService(t, &memRecorder{})

	toast := svc.Execute(context.Background(), commands.AddMember{Name: "Alice", Email: "not-an-email"}, "")

	if toast.Level != models.ToastDanger || toast.Message != "Invalid email address." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if members, _ := st.ListMembers(); len(members) != 0 {
		t.Error("member created with invalid email")
	}
}

func TestAddMemberDuplicateEmail(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	seedMember(t, st, "alice@example.com")

	toast := svc.Execute(context.Background(), commands.AddMember{Name: "Bob", Email: "alice@example.com"}, "")

	if toast.Level != models.ToastDanger || toast.Message != "Email already exists." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if members, _ := st.ListMembers(); len(members) != 1 {
		t.Error("duplicate member created")
	}
}

func TestEditMemberSkipsUniquenessCheck(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	id := seedMember(t, st, "alice@example.com")

	toast := svc.Execute(context.Background(), commands.EditMember{
		ID: id, Name: "Alice B", Email: "alice@example.org", Phone: "555-0101", Address: "2 Main St",
	}, "")

	if toast.Level != models.ToastInfo || toast.Message != "Member details updated." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	members, _ := st.ListMembers()
	if members[0].Email != "alice@example.org" {
		t.Errorf("edit not applied: %+v", members[0])
	}
}

func TestDeleteMemberWithActiveLoan(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	if _, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-06-10", ReturnDate: "2024-06-20"}, "2024-06-15"); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.DeleteMember{ID: memberID}, "")

	if toast.Level != models.ToastDanger || toast.Message != "Member has active loans." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if members, _ := st.ListMembers(); len(members) != 1 {
		t.Error("member deleted despite active loan")
	}
}

func TestAddLoanDateOrder(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")

	tests := []struct {
		name       string
		loanDate   string
		returnDate string
		wantMsg    string
		wantLevel  models.ToastLevel
	}{
		{"return before loan", "2024-06-20", "2024-06-10", "Return date must be after loan date.", models.ToastDanger},
		{"return equals loan", "2024-06-20", "2024-06-20", "Return date must be after loan date.", models.ToastDanger},
		{"return after loan", "2024-06-16", "2024-06-20", "Loan recorded!", models.ToastSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast := svc.Execute(context.Background(), commands.AddLoan{
				BookID: bookID, MemberID: memberID, LoanDate: tt.loanDate, ReturnDate: tt.returnDate,
			}, "")
			if toast.Level != tt.wantLevel || toast.Message != tt.wantMsg {
				t.Errorf("toast = %+v, want %s %q", toast, tt.wantLevel, tt.wantMsg)
			}
		})
	}

	if loans, _ := st.ListLoans(); len(loans) != 1 {
		t.Errorf("want exactly 1 loan recorded, got %d", len(loans))
	}
}

func TestAddLoanBookAlreadyOnLoan(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	other := seedMember(t, st, "bob@example.com")
	if _, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-06-10", ReturnDate: "2024-06-20"}, "2024-06-15"); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.AddLoan{
		BookID: bookID, MemberID: other, LoanDate: "2024-06-15", ReturnDate: "2024-06-25",
	}, "")

	if toast.Level != models.ToastDanger || toast.Message != "Book is already on loan." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if loans, _ := st.ListLoans(); len(loans) != 1 {
		t.Errorf("loan count changed on rejected booking: %d", len(loans))
	}
}

func TestEditLoanSkipsExclusivityCheck(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	id, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-06-10", ReturnDate: "2024-06-20"}, "2024-06-15")
	if err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.EditLoan{
		ID: id, LoanDate: "2024-06-11", ReturnDate: "2024-06-30",
	}, "")

	if toast.Level != models.ToastInfo || toast.Message != "Loan dates updated." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
}

func TestDeleteLoanAlwaysPermitted(t *testing.T) {
	svc, st := newService(t, &memRecorder{})
	bookID := seedBook(t, st)
	memberID := seedMember(t, st, "alice@example.com")
	id, err := st.CreateLoan(models.Loan{BookID: bookID, MemberID: memberID, LoanDate: "2024-06-10", ReturnDate: "2024-06-20"}, "2024-06-15")
	if err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	toast := svc.Execute(context.Background(), commands.DeleteLoan{ID: id}, "")

	if toast.Level != models.ToastWarning || toast.Message != "Loan record deleted." {
		t.Fatalf("unexpected toast: %+v", toast)
	}
	if loans, _ := st.ListLoans(); len(loans) != 0 {
		t.Error("loan not deleted")
	}
}

func TestAuditFailureDoesNotAffectMutation(t *testing.T) {
	svc, st := newService(t, failRecorder{})

	toast := svc.Execute(context.Background(), commands.AddBook{
		Title: "Dune", Author: "Herbert", Publisher: "Ace", Year: 1965, Genre: "SciFi",
	}, "")

	if toast.Level != models.ToastSuccess || toast.Message != "Book added successfully!" {
		t.Fatalf("audit failure leaked into result: %+v", toast)
	}
	if books, _ := st.ListBooks(); len(books) != 1 {
		t.Error("mutation lost")
	}
}
