// Package session owns the authenticated-identity lifecycle: bootstrap
// from persisted state, validation against the backend, and the
// guarantee that a flaky network never logs the user out.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"roveri/internal/api"
	"roveri/internal/models"
	"roveri/internal/storage"
	"roveri/internal/utils"
)

// State is the consistent view exposed to the UI. Degraded means the
// last validation attempt died at the transport level; it is never by
// itself a reason to drop the identity.
type State struct {
	Identity *models.Identity
	Loading  bool
	Degraded bool
}

// Result is the tagged outcome login/register hand to the UI. Err is a
// human-readable message, already extracted from the error body when
// the backend sent one.
type Result struct {
	OK  bool
	Err string
}

type Manager struct {
	api   *api.Client
	store *storage.Store
	log   *utils.RemoteLogger

	mu       sync.Mutex
	identity *models.Identity
	loading  bool
	degraded bool
	onChange func()
}

func NewManager(client *api.Client, store *storage.Store, log *utils.RemoteLogger) *Manager {
	return &Manager{
		api:   client,
		store: store,
		log:   log,
	}
}

// SetOnChange registers the UI redraw hook. Called outside the lock.
func (m *Manager) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Manager) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Identity: m.identity, Loading: m.loading, Degraded: m.degraded}
}

// Bootstrap restores the persisted identity and validates it against
// the backend. Loading shows only when there is a stored identity to
// validate; an empty profile goes straight to the login screen.
func (m *Manager) Bootstrap(ctx context.Context) {
	stored, err := m.store.LoadIdentity()
	if err != nil {
		m.log.Logf("[session] failed to load stored identity: %v", err)
	}
	m.mu.Lock()
	m.identity = stored
	m.loading = stored != nil
	m.degraded = false
	m.mu.Unlock()
	m.notify()

	m.validate(ctx)
}

// validate runs the "who am I" check and classifies the outcome per the
// error taxonomy: transport failures flip the degraded flag, an
// explicit 401 destroys the identity, anything else keeps it.
func (m *Manager) validate(ctx context.Context) {
	ident, err := m.api.Me(ctx)

	m.mu.Lock()
	switch {
	case err == nil:
		m.identity = ident
		m.degraded = false
		if serr := m.store.SaveIdentity(ident); serr != nil {
			m.log.Logf("[session] failed to persist identity: %v", serr)
		}
	case api.IsUnauthenticated(err):
		m.identity = nil
		m.degraded = false
		_ = m.store.ClearIdentity()
		_ = m.store.ClearTokens()
	case api.IsTransport(err):
		// No response at all. Keep whatever identity we had and record
		// the artifact for later inspection; never surface this one.
		m.degraded = true
		m.recordError(err)
	default:
		// Explicit non-401 server error: assume transient, keep identity.
		m.recordError(err)
	}
	m.loading = false
	m.mu.Unlock()
	m.notify()

	if err != nil {
		m.log.Logf("[session] validation failed: %v", err)
	}
}

// Refresh re-validates the identity against the backend. Used after
// profile updates instead of relying on a restart to re-sync state.
func (m *Manager) Refresh(ctx context.Context) {
	m.validate(ctx)
}

// Login authenticates. The backend usually inlines the identity in the
// login response; when it does not, a follow-up fetch fills the gap.
func (m *Manager) Login(ctx context.Context, creds api.Credentials) Result {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.api.Login(ctx, creds)
	if err != nil {
		m.recordError(err)
		return Result{Err: api.ErrorMessage(err)}
	}
	m.recordResponse(res)

	ident := res.User
	if ident == nil {
		ident, err = m.api.Me(ctx)
		if err != nil {
			// Tokens stay put: the login itself succeeded.
			m.recordError(err)
			return Result{Err: "failed to load user data"}
		}
	}
	m.commitIdentity(ident)
	return Result{OK: true}
}

// Register creates the account, then unconditionally fetches the
// identity (registration responses never inline it).
func (m *Manager) Register(ctx context.Context, reg api.Registration) Result {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.api.Register(ctx, reg); err != nil {
		m.recordError(err)
		return Result{Err: api.ErrorMessage(err)}
	}
	ident, err := m.api.Me(ctx)
	if err != nil {
		m.recordError(err)
		return Result{Err: "failed to load user data"}
	}
	m.commitIdentity(ident)
	return Result{OK: true}
}

// Logout tells the backend to drop the server-side session, then clears
// local state unconditionally. A failing backend call must never leave
// the client looking authenticated.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Logf("[session] logout request failed, clearing local session anyway: %v", err)
	}

	m.mu.Lock()
	m.identity = nil
	m.degraded = false
	_ = m.store.ClearIdentity()
	_ = m.store.ClearTokens()
	_ = m.store.ClearDiagnostics()
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) commitIdentity(ident *models.Identity) {
	m.mu.Lock()
	m.identity = ident
	m.degraded = false
	if err := m.store.SaveIdentity(ident); err != nil {
		m.log.Logf("[session] failed to persist identity: %v", err)
	}
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
	m.notify()
}

// recordError stores a diagnostic artifact, best effort.
func (m *Manager) recordError(err error) {
	artifact, merr := json.Marshal(map[string]string{"message": err.Error()})
	if merr != nil {
		return
	}
	_ = m.store.PutDiagnostic(storage.DiagLastAuthError, string(artifact))
}

func (m *Manager) recordResponse(v any) {
	artifact, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = m.store.PutDiagnostic(storage.DiagLastAuthResponse, string(artifact))
}
