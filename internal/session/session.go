// Package session tracks authentication state and fans out transition
// events. The ledger service consumes the events; how a session actually
// becomes valid (OAuth, magic link) is someone else's problem.
package session

import "sync"

// Session is the current authentication state. The zero value is anonymous.
type Session struct {
	UserID string `json:"user_id,omitempty"`
}

func Anonymous() Session { return Session{} }

func Authenticated(userID string) Session { return Session{UserID: userID} }

// IsAuthenticated reports whether the session belongs to a signed-in user.
func (s Session) IsAuthenticated() bool { return s.UserID != "" }

// Handler receives session transitions. SessionStarted fires once per
// signed-out to signed-in transition; SessionEnded fires on sign-out.
type Handler interface {
	SessionStarted(userID string)
	SessionEnded()
}

// Observer owns the current session and notifies subscribers on genuine
// transitions. Duplicate sign-in events for the user already signed in are
// dropped, so a handler's migration work runs at most once per logical
// session start.
type Observer struct {
	mu       sync.Mutex
	current  Session
	handlers []Handler
}

func NewObserver() *Observer {
	return &Observer{}
}

// Subscribe registers a handler. Intended to be called once at startup,
// before any transition is emitted.
func (o *Observer) Subscribe(h Handler) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.handlers = append(o.handlers, h)
}

// Current returns the session as of this call. Callers must not cache the
// result across operations; state can change between calls.
func (o *Observer) Current() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Seed sets the session state without firing events. Used to replay a
// persisted session at startup; replay is not a transition.
func (o *Observer) Seed(s Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = s
}

// SignIn transitions to the authenticated state and notifies handlers.
// A repeated sign-in for the same user is a no-op. A sign-in while another
// user is active ends that session first.
func (o *Observer) SignIn(userID string) {
	o.mu.Lock()
	if o.current.UserID == userID {
		o.mu.Unlock()
		return
	}
	wasAuthenticated := o.current.IsAuthenticated()
	o.current = Authenticated(userID)
	handlers := append([]Handler(nil), o.handlers...)
	o.mu.Unlock()

	for _, h := range handlers {
		if wasAuthenticated {
			h.SessionEnded()
		}
		h.SessionStarted(userID)
	}
}

// SignOut transitions back to anonymous. Stored data is left untouched;
// only routing changes.
func (o *Observer) SignOut() {
	o.mu.Lock()
	if !o.current.IsAuthenticated() {
		o.mu.Unlock()
		return
	}
	o.current = Anonymous()
	handlers := append([]Handler(nil), o.handlers...)
	o.mu.Unlock()

	for _, h := range handlers {
		h.SessionEnded()
	}
}
