package handlers

import (
	"net/http"
	"time"

	"github.com/Patrickdwa/PatrickBooks/internal/audit"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
	"github.com/Patrickdwa/PatrickBooks/internal/session"
	"github.com/Patrickdwa/PatrickBooks/internal/store"
	"github.com/Patrickdwa/PatrickBooks/internal/utils"
)

// DashboardHandler serves the read side consumed by the dashboard
// frontend: entity listings, recent activity, aggregate counts, the
// session's CSRF token and the pending toast.
type DashboardHandler struct {
	Store    *store.Store
	Logs     *audit.Reader
	Sessions *session.Manager

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (h *DashboardHandler) today() string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().Format(models.DateLayout)
}

// GET /api/books
func (h *DashboardHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks()
	if err != nil {
		utils.JSONError(w, "Failed to fetch books", http.StatusInternalServerError)
		return
	}
	if books == nil {
		books = []models.Book{}
	}
	utils.WriteJSON(w, books)
}

// GET /api/members
func (h *DashboardHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListMembers()
	if err != nil {
		utils.JSONError(w, "Failed to fetch members", http.StatusInternalServerError)
		return
	}
	if members == nil {
		members = []models.Member{}
	}
	utils.WriteJSON(w, members)
}

// GET /api/loans
func (h *DashboardHandler) GetLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Store.ListLoans()
	if err != nil {
		utils.JSONError(w, "Failed to fetch loans", http.StatusInternalServerError)
		return
	}
	if loans == nil {
		loans = []models.LoanDetail{}
	}
	utils.WriteJSON(w, loans)
}

// GET /api/logs
func (h *DashboardHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	entries := h.Logs.Recent(r.Context())
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	utils.WriteJSON(w, entries)
}

// GET /api/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	books, members, activeLoans, err := h.Store.Counts(h.today())
	if err != nil {
		utils.JSONError(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, map[string]int64{
		"books":        books,
		"members":      members,
		"active_loans": activeLoans,
		"logs":         h.Logs.Count(r.Context()),
	})
}

// GET /api/session
func (h *DashboardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token, err := h.Sessions.Ensure(w, r)
	if err != nil {
		utils.JSONError(w, "Failed to initialize session", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, map[string]string{"csrf_token": token})
}

// GET /api/toast
func (h *DashboardHandler) GetToast(w http.ResponseWriter, r *http.Request) {
	toast := h.Sessions.PopToast(w, r)
	if toast == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.WriteJSON(w, toast)
}
