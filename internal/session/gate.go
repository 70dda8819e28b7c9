// Package session implements the client-side login gate: it defers a gated
// action while the user is anonymous and replays the most recent one exactly
// once after the next successful sign-in.
package session

import (
	"context"

	"elix-server/internal/domain"
)

// State is the gate's authentication state. The transient in-flight phase of
// the identity provider's flow is owned by the provider and not modeled here.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the slice of the identity provider's session the gate needs.
type Session struct {
	UserID string
	Email  string
}

// AuthEvent is the typed event stream emitted by the identity provider and
// consumed by exactly one gate.
type AuthEvent interface{ isAuthEvent() }

// SignedIn reports a completed sign-in.
type SignedIn struct{ Session Session }

// TokenRefreshed reports a token refresh; when it carries a session it is
// treated exactly like SignedIn.
type TokenRefreshed struct{ Session *Session }

// SignedOut reports a sign-out.
type SignedOut struct{}

func (SignedIn) isAuthEvent()       {}
func (TokenRefreshed) isAuthEvent() {}
func (SignedOut) isAuthEvent()      {}

// PendingAction holds the reconstructible inputs of a gated action that was
// blocked by a missing session.
type PendingAction struct {
	Text    string
	Persona domain.Persona
}

// Options wires the gate's collaborators.
type Options struct {
	// LoadRecord loads or creates the user's usage record after sign-in.
	LoadRecord func(ctx context.Context, userID string) (*domain.UsageRecord, error)
	// Execute runs a gated action (immediately or as a replay).
	Execute func(ctx context.Context, action PendingAction) error
	// PromptLogin surfaces the login prompt when an anonymous user triggers
	// a gated action. Optional.
	PromptLogin func()
}

// Gate is the session state machine. It is written for a single-threaded,
// event-driven caller: one goroutine triggers actions and feeds events; there
// are no concurrent writers by construction.
type Gate struct {
	opts    Options
	state   State
	session *Session
	record  *domain.UsageRecord
	pending *PendingAction
}

func NewGate(opts Options) *Gate {
	return &Gate{opts: opts}
}

func (g *Gate) State() State { return g.state }

// Session returns the current session, if any.
func (g *Gate) Session() (Session, bool) {
	if g.session == nil {
		return Session{}, false
	}
	return *g.session, true
}

// Record returns the cached usage record loaded at sign-in, if any. It is a
// cache only; the remote store remains authoritative.
func (g *Gate) Record() (domain.UsageRecord, bool) {
	if g.record == nil {
		return domain.UsageRecord{}, false
	}
	return *g.record, true
}

// Pending returns the deferred action, if one is stored.
func (g *Gate) Pending() (PendingAction, bool) {
	if g.pending == nil {
		return PendingAction{}, false
	}
	return *g.pending, true
}

// Trigger submits a gated action. Authenticated users execute immediately and
// the result is returned. Anonymous users get the action stored as the single
// pending slot, replacing any previous one (only the most recent gesture is
// honored after login), and the login prompt is surfaced; executed is false.
func (g *Gate) Trigger(ctx context.Context, action PendingAction) (executed bool, err error) {
	if g.state == Authenticated {
		return true, g.opts.Execute(ctx, action)
	}
	g.pending = &action
	if g.opts.PromptLogin != nil {
		g.opts.PromptLogin()
	}
	return false, nil
}

// Handle applies one auth event. On sign-in it loads the usage record and
// replays a pending action exactly once; the slot is cleared before the replay
// runs so a failure is reported but never retried. On sign-out all cached
// state and any pending action are dropped unconditionally.
func (g *Gate) Handle(ctx context.Context, ev AuthEvent) error {
	switch e := ev.(type) {
	case SignedIn:
		return g.signIn(ctx, e.Session)
	case TokenRefreshed:
		if e.Session == nil {
			return nil
		}
		return g.signIn(ctx, *e.Session)
	case SignedOut:
		g.state = Anonymous
		g.session = nil
		g.record = nil
		g.pending = nil
		return nil
	default:
		return nil
	}
}

// Run consumes events until the channel closes or the context ends. Handler
// errors are delivered to onError when set; they never stop the loop.
func (g *Gate) Run(ctx context.Context, events <-chan AuthEvent, onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := g.Handle(ctx, ev); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}

func (g *Gate) signIn(ctx context.Context, sess Session) error {
	g.state = Authenticated
	g.session = &sess

	if g.opts.LoadRecord != nil {
		rec, err := g.opts.LoadRecord(ctx, sess.UserID)
		if err == nil {
			g.record = rec
		} else {
			g.record = nil
		}
	}

	if g.pending == nil {
		return nil
	}
	action := *g.pending
	g.pending = nil
	return g.opts.Execute(ctx, action)
}
