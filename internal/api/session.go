package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "gdpdash_session"
	sessionKey    = "session_id"
)

// SessionGate serializes pipeline requests per browser session so a burst
// of control changes renders in order. Different sessions do not block
// each other.
type SessionGate struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionGate() *SessionGate {
	return &SessionGate{locks: make(map[string]*sessionLock)}
}

// acquire blocks until the session's lock is held and returns its release.
func (g *SessionGate) acquire(id string) func() {
	g.mu.Lock()
	l, ok := g.locks[id]
	if !ok {
		l = &sessionLock{}
		g.locks[id] = l
	}
	l.refs++
	g.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, id)
		}
		g.mu.Unlock()
	}
}

// active reports how many sessions currently hold or wait on a lock.
func (g *SessionGate) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.locks)
}

// sessionID returns the request's session, issuing a cookie if missing.
func (g *SessionGate) sessionID(c echo.Context) string {
	if id, ok := c.Get(sessionKey).(string); ok {
		return id
	}
	var id string
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		id = ck.Value
	} else {
		id = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(sessionKey, id)
	return id
}

// Track makes sure the response carries a session cookie.
func (g *SessionGate) Track(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		g.sessionID(c)
		return next(c)
	}
}

// Serialize runs the handler while holding the session's lock.
func (g *SessionGate) Serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		release := g.acquire(g.sessionID(c))
		defer release()
		return next(c)
	}
}
