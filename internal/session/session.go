package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Patrickdwa/PatrickBooks/internal/models"
)

const sessionName = "library_session"

// Session value keys.
const (
	keyState      = "state"
	keyCSRF       = "csrf_token"
	keyToastLevel = "toast_type"
	keyToastMsg   = "toast_msg"
)

// State is the session lifecycle position. A session moves from
// StateNew to StateInitiated exactly once, on first contact; the CSRF
// token is generated during that transition and never again.
type State int

const (
	StateNew State = iota
	StateInitiated
)

// Manager owns the cookie session carrying the CSRF token and the
// one-shot toast. All access goes through the request/response pair;
// there is no ambient state.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(key []byte) *Manager {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// A malformed or tampered cookie decodes to a fresh session, which
	// is the same as a new visitor.
	s, _ := m.store.Get(r, sessionName)
	return s
}

func state(s *sessions.Session) State {
	if v, ok := s.Values[keyState].(int); ok {
		return State(v)
	}
	return StateNew
}

// Ensure advances a new session to StateInitiated, minting its CSRF
// token, and returns the current token for embedding in forms.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	s := m.get(r)
	if state(s) == StateInitiated {
		token, _ := s.Values[keyCSRF].(string)
		return token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.Values[keyState] = int(StateInitiated)
	s.Values[keyCSRF] = token
	if err := s.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// VerifyCSRF compares the submitted token against the session's token
// in constant time. A session that never initiated has no token and
// fails every check.
func (m *Manager) VerifyCSRF(r *http.Request, submitted string) bool {
	s := m.get(r)
	token, ok := s.Values[keyCSRF].(string)
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) == 1
}

// SetToast stores the one-shot status message for the next render.
func (m *Manager) SetToast(w http.ResponseWriter, r *http.Request, toast models.Toast) error {
	s := m.get(r)
	s.Values[keyToastLevel] = string(toast.Level)
	s.Values[keyToastMsg] = toast.Message
	return s.Save(r, w)
}

// PopToast returns the pending toast, if any, and clears it regardless
// of whether the caller displays it.
func (m *Manager) PopToast(w http.ResponseWriter, r *http.Request) *models.Toast {
	s := m.get(r)
	level, _ := s.Values[keyToastLevel].(string)
	msg, _ := s.Values[keyToastMsg].(string)
	if msg == "" {
		return nil
	}
	delete(s.Values, keyToastLevel)
	delete(s.Values, keyToastMsg)
	_ = s.Save(r, w)
	return &models.Toast{Level: models.ToastLevel(level), Message: msg}
}
