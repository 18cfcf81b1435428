package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/supermarket/internal/models"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// CurrentUser is the identity kept in the session after login.
type CurrentUser struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

func (u CurrentUser) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}

// Session is the request-scoped view of a stored session.
// It is not safe for concurrent use; each request gets its own.
type Session struct {
	id        string
	replaced  string
	data      Data
	isNew     bool
	dirty     bool
	destroyed bool
}

func newSession(id string, data Data, isNew bool) *Session {
	return &Session{id: id, data: data, isNew: isNew}
}

// New returns an unsaved session holding data under a fresh id.
func New(data Data) *Session {
	return newSession(uuid.NewString(), data, true)
}

func (s *Session) ID() string {
	return s.id
}

// User returns the logged-in user, if any.
func (s *Session) User() (CurrentUser, bool) {
	if s.data.UserID == 0 {
		return CurrentUser{}, false
	}
	return CurrentUser{ID: s.data.UserID, Username: s.data.Username, Role: s.data.Role}, true
}

func (s *Session) SetUser(u models.User) {
	s.data.UserID = u.ID
	s.data.Username = u.Username
	s.data.Role = u.Role
	s.dirty = true
}

func (s *Session) Cart() models.Cart {
	return s.data.Cart
}

func (s *Session) SetCart(c models.Cart) {
	s.data.Cart = c
	s.dirty = true
}

func (s *Session) AddFlash(kind, msg string) {
	if s.data.Flash == nil {
		s.data.Flash = make(map[string][]string)
	}
	s.data.Flash[kind] = append(s.data.Flash[kind], msg)
	s.dirty = true
}

// Flashes returns and clears all pending flash messages.
func (s *Session) Flashes() map[string][]string {
	f := s.data.Flash
	if len(f) > 0 {
		s.data.Flash = nil
		s.dirty = true
	}
	if f == nil {
		f = map[string][]string{}
	}
	return f
}

// RenewID moves the session data to a fresh id. The old id is removed from the
// store on commit. Called on login.
func (s *Session) RenewID() {
	if !s.isNew && s.replaced == "" {
		s.replaced = s.id
	}
	s.id = uuid.NewString()
	s.dirty = true
}

// Destroy marks the session for removal; the store entry and cookie are
// cleared when the response is written.
func (s *Session) Destroy() {
	s.destroyed = true
	s.data = Data{}
}

type contextKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the request session. Without the session middleware a
// detached empty session is returned so callers never see nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok {
		return s
	}
	return newSession("", Data{}, true)
}
