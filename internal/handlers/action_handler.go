package handlers

import (
	"net"
	"net/http"

	"github.com/Patrickdwa/PatrickBooks/internal/commands"
	"github.com/Patrickdwa/PatrickBooks/internal/library"
	"github.com/Patrickdwa/PatrickBooks/internal/models"
	"github.com/Patrickdwa/PatrickBooks/internal/session"
)

// ActionHandler is the single mutation entry point: CSRF guard, command
// parse, dispatch, toast, redirect. Every POST ends in the redirect
// back to the dashboard so a refresh never resubmits.
type ActionHandler struct {
	Service  *library.Service
	Sessions *session.Manager
}

func NewActionHandler(svc *library.Service, sessions *session.Manager) *ActionHandler {
	return &ActionHandler{Service: svc, Sessions: sessions}
}

// POST /actions
func (h *ActionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if !h.Sessions.VerifyCSRF(r, r.PostFormValue("csrf_token")) {
		// No handler runs on a token mismatch.
		h.Sessions.SetToast(w, r, models.Toast{Level: models.ToastDanger, Message: "Security token mismatch."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if cmd := commands.Parse(r.PostForm); cmd != nil {
		toast := h.Service.Execute(r.Context(), cmd, clientIP(r))
		h.Sessions.SetToast(w, r, toast)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return models.UnknownIP
	}
	return host
}
