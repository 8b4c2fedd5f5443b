package session

// Decision is what a protected screen should do given the current
// session state.
type Decision int

const (
	// ShowLoading while a stored identity is still being validated.
	ShowLoading Decision = iota
	// Redirect to the login entry point: definitively signed out.
	Redirect
	// Allow rendering the protected content. Includes the degraded
	// no-identity case, optimistically letting the user in so they can
	// retry by hand instead of bouncing them off a dead network.
	Allow
)

// Decide maps a session state to a routing decision. Redirect only
// happens on a clear absence of identity over healthy connectivity.
func Decide(s State) Decision {
	if s.Loading {
		return ShowLoading
	}
	if s.Identity == nil && !s.Degraded {
		return Redirect
	}
	return Allow
}

// Guard is Decide over the manager's current state.
func (m *Manager) Guard() Decision {
	return Decide(m.Snapshot())
}
