package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/supermarket/internal/auth"
	"github.com/rs/zerolog"
)

const CookieName = "supermarket.sid"

// Manager binds a Store to HTTP requests through a signed session cookie.
type Manager struct {
	store  Store
	tokens *auth.TokenIssuer
	logger zerolog.Logger
}

func NewManager(store Store, tokens *auth.TokenIssuer, logger zerolog.Logger) *Manager {
	return &Manager{store: store, tokens: tokens, logger: logger}
}

func (m *Manager) ttl() time.Duration {
	return m.tokens.TTL()
}

// load resolves the session from the request cookie, or starts a new one.
func (m *Manager) load(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err == nil {
		sid, perr := m.tokens.Parse(c.Value)
		if perr == nil {
			data, lerr := m.store.Load(r.Context(), sid)
			if lerr == nil {
				return newSession(sid, data, false)
			}
			if !errors.Is(lerr, ErrNoSession) {
				m.logger.Error().Err(lerr).Msg("failed to load session")
			}
		}
	}
	return newSession(uuid.NewString(), Data{}, true)
}

// Middleware attaches a *Session to every request and persists it before the
// response headers are sent.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		sw := &sessionWriter{ResponseWriter: w, commit: func() { m.commit(w, r, sess) }}

		next.ServeHTTP(sw, r.WithContext(NewContext(r.Context(), sess)))
		sw.commitOnce()
	})
}

func (m *Manager) commit(w http.ResponseWriter, r *http.Request, sess *Session) {
	if sess.destroyed {
		for _, id := range []string{sess.id, sess.replaced} {
			if id == "" {
				continue
			}
			if err := m.store.Destroy(r.Context(), id); err != nil {
				m.logger.Error().Err(err).Msg("failed to destroy session")
			}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return
	}

	if !sess.isNew && !sess.dirty {
		return
	}

	if sess.replaced != "" {
		if err := m.store.Destroy(r.Context(), sess.replaced); err != nil {
			m.logger.Error().Err(err).Msg("failed to drop renewed session")
		}
	}

	if err := m.store.Save(r.Context(), sess.id, sess.data, m.ttl()); err != nil {
		m.logger.Error().Err(err).Msg("failed to save session")
		return
	}

	token, err := m.tokens.Sign(sess.id)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to sign session cookie")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionWriter runs commit right before the first header or body write.
type sessionWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (sw *sessionWriter) commitOnce() {
	if sw.committed {
		return
	}
	sw.committed = true
	sw.commit()
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.commitOnce()
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.commitOnce()
	return sw.ResponseWriter.Write(b)
}

func (sw *sessionWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
