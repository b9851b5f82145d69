// Package guard decides, per navigation, whether a target route may render
// or must redirect, based on session state. It is pure state machine: it
// performs no I/O and no navigation itself.
package guard

import "sync"

// Well-known routes.
const (
	RouteRoot    = "/"
	RouteLogin   = "/auth/login"
	RouteSignup  = "/auth/signup"
	RouteLanding = "/jobs"
)

// State is the guard's knowledge of the session.
type State int

const (
	// StateUnknown: the session has not been read yet. The guard renders
	// a neutral loading state and never redirects from here, so a redirect
	// cannot flash before the session read completes.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Action is what the caller should do with the target route.
type Action int

const (
	ActionAllow Action = iota
	ActionLoading
	ActionRedirect
)

// Decision is the guard's verdict for one navigation. For ActionRedirect,
// Target is where to go and ReturnTo preserves the originally requested
// route so login can come back to it.
type Decision struct {
	Action   Action
	Target   string
	ReturnTo string
}

// Guard tracks session state and an allow-list of public routes.
type Guard struct {
	mu     sync.Mutex
	state  State
	public map[string]struct{}
}

// New constructs a guard in StateUnknown. Without arguments the default
// public allow-list (root, login, signup) applies.
func New(public ...string) *Guard {
	if len(public) == 0 {
		public = []string{RouteRoot, RouteLogin, RouteSignup}
	}
	set := make(map[string]struct{}, len(public))
	for _, r := range public {
		set[r] = struct{}{}
	}
	return &Guard{public: set}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Resolve moves the guard out of StateUnknown after the initial session
// read. It is a no-op once the state is known.
func (g *Guard) Resolve(authenticated bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateUnknown {
		return
	}
	if authenticated {
		g.state = StateAuthenticated
	} else {
		g.state = StateUnauthenticated
	}
}

// LoginSucceeded records a successful authentication.
func (g *Guard) LoginSucceeded() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateAuthenticated
}

// Logout records an explicit logout or a gateway-reported 401.
func (g *Guard) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateUnauthenticated
}

// Decide returns the verdict for navigating to route in the current state.
func (g *Guard) Decide(route string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateUnknown:
		return Decision{Action: ActionLoading}

	case StateUnauthenticated:
		if _, ok := g.public[route]; ok {
			return Decision{Action: ActionAllow}
		}
		return Decision{Action: ActionRedirect, Target: RouteLogin, ReturnTo: route}

	default: // StateAuthenticated
		if route == RouteLogin || route == RouteSignup {
			return Decision{Action: ActionRedirect, Target: RouteLanding}
		}
		return Decision{Action: ActionAllow}
	}
}
