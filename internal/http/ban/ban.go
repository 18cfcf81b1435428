package ban

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	strikesPrefix = "ban:strikes:"
	activePrefix  = "ban:active:"

	msgBanned = "Too many failed login attempts. Please try again later."
)

// Guard locks a client out of the login form after repeated failures.
type Guard struct {
	counter     Counter
	maxFailures int
	window      time.Duration
	banFor      time.Duration
	logger      zerolog.Logger
}

func NewGuard(counter Counter, maxFailures int, window, banFor time.Duration, logger zerolog.Logger) *Guard {
	if maxFailures < 1 {
		maxFailures = 5
	}
	return &Guard{
		counter:     counter,
		maxFailures: maxFailures,
		window:      window,
		banFor:      banFor,
		logger:      logger,
	}
}

// Banned reports whether target is locked out. Store errors fail open.
func (g *Guard) Banned(ctx context.Context, target string) bool {
	banned, err := g.counter.Exists(ctx, activePrefix+target)
	if err != nil {
		g.logger.Error().Err(err).Str("target", target).Msg("failed to check ban")
		return false
	}
	return banned
}

// Fail records one failed attempt and bans target once maxFailures is reached
// within the window. It reports whether target is now banned.
func (g *Guard) Fail(ctx context.Context, target string) bool {
	strikes, err := g.counter.Incr(ctx, strikesPrefix+target, g.window)
	if err != nil {
		g.logger.Error().Err(err).Str("target", target).Msg("failed to record strike")
		return false
	}
	if strikes < g.maxFailures {
		return false
	}

	if err := g.counter.Mark(ctx, activePrefix+target, g.banFor); err != nil {
		g.logger.Error().Err(err).Str("target", target).Msg("failed to ban client")
		return false
	}
	_ = g.counter.Delete(ctx, strikesPrefix+target)

	g.logger.Warn().
		Str("target", target).
		Int("strikes", strikes).
		Dur("ban_duration", g.banFor).
		Msg("client banned after failed logins")
	return true
}

// Reset forgets earlier strikes, called after a successful login.
func (g *Guard) Reset(ctx context.Context, target string) {
	if err := g.counter.Delete(ctx, strikesPrefix+target); err != nil {
		g.logger.Error().Err(err).Str("target", target).Msg("failed to reset strikes")
	}
}

func (g *Guard) RecordFailure(r *http.Request) bool {
	return g.Fail(r.Context(), ClientIP(r))
}

func (g *Guard) RecordSuccess(r *http.Request) {
	g.Reset(r.Context(), ClientIP(r))
}

// Middleware answers 429 to banned clients.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Banned(r.Context(), ClientIP(r)) {
			http.Error(w, msgBanned, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
