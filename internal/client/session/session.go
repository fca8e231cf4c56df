// Package session keeps the client's view of who is logged in.
//
// A Manager owns the session token and the identity it resolves to. Every
// operation takes a generation number when it starts; when it finishes it
// may only change the state (and the persisted token) if no newer operation
// has started since. Late results of older operations are dropped and the
// caller gets ErrSuperseded.
//
// Only the token is persisted. The identity is always asked from the server.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/logging"
)

type Status int

const (
	Unauthenticated Status = iota
	Resolving
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// State is a snapshot of the session. Identity is set iff Status is
// Authenticated; an empty Token implies Unauthenticated.
type State struct {
	Token    string
	Identity *models.Account
	Status   Status
}

var (
	ErrSuperseded       = errors.New("session operation superseded")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// API is the part of the folio API the manager talks to.
type API interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
	WhoAmI(ctx context.Context, token string) (*models.Account, error)
}

// Store persists the session token between runs.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type subscriber struct {
	id uint64
	fn func(State)
}

type Manager struct {
	api    API
	store  Store
	logger logging.Logger

	// notifyMu orders commits together with their notifications, so
	// subscribers see states in commit order.
	notifyMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	state   State
	settled chan struct{} // closed while Status != Resolving
	subs    []subscriber
	nextSub uint64
}

func NewManager(api API, store Store, logger logging.Logger) *Manager {
	settled := make(chan struct{})
	close(settled)
	return &Manager{
		api:     api,
		store:   store,
		logger:  logger.With("module", "session"),
		settled: settled,
	}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to be called after every state change. fn runs on
// the goroutine that made the change and must not call back into the
// manager's mutating methods synchronously.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Wait blocks until the session is no longer resolving.
func (m *Manager) Wait(ctx context.Context) (State, error) {
	for {
		m.mu.Lock()
		st, ch := m.state, m.settled
		m.mu.Unlock()

		if st.Status != Resolving {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Start restores a persisted session. Any failure to resolve the stored
// token (expired, rejected, server down) settles to Unauthenticated and
// clears the store; only ErrSuperseded is returned.
func (m *Manager) Start(ctx context.Context) error {
	gen := m.begin()

	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "stored session unreadable", "error", err)
	}
	if err != nil || token == "" {
		return m.commit(ctx, gen, State{}, nil)
	}

	if err := m.commit(ctx, gen, State{Token: token, Status: Resolving}, nil); err != nil {
		return err
	}

	acc, err := m.api.WhoAmI(ctx, token)
	if err != nil {
		m.logger.Info(ctx, "stored session rejected", "error", err)
		if cerr := m.commit(ctx, gen, State{}, m.store.Clear); errors.Is(cerr, ErrSuperseded) {
			return cerr
		} else if cerr != nil {
			m.logger.Warn(ctx, "clearing stored session failed", "error", cerr)
		}
		return nil
	}

	return m.commit(ctx, gen, State{Token: token, Identity: acc, Status: Authenticated}, nil)
}

// Login exchanges credentials for a token, persists it and resolves the
// identity. A rejected login leaves the current session in place.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.api.Login(ctx, email, password)
	})
}

// Register creates the account and then behaves like Login with the
// issued token. confirm must equal password; the server is not called
// otherwise.
func (m *Manager) Register(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return m.authenticate(ctx, func(ctx context.Context) (*models.AuthResponse, error) {
		return m.api.Register(ctx, email, password)
	})
}

func (m *Manager) authenticate(ctx context.Context, issue func(context.Context) (*models.AuthResponse, error)) error {
	gen := m.begin()

	res, err := issue(ctx)
	if err != nil {
		m.abandon(ctx, gen)
		return err
	}

	save := func(ctx context.Context) error { return m.store.Save(ctx, res.Token) }
	if err := m.commit(ctx, gen, State{Token: res.Token, Status: Resolving}, save); errors.Is(err, ErrSuperseded) {
		return err
	} else if err != nil {
		m.logger.Warn(ctx, "session token not persisted", "error", err)
	}

	acc, err := m.api.WhoAmI(ctx, res.Token)
	if err != nil {
		if cerr := m.commit(ctx, gen, State{}, m.store.Clear); errors.Is(cerr, ErrSuperseded) {
			return cerr
		}
		return err
	}

	return m.commit(ctx, gen, State{Token: res.Token, Identity: acc, Status: Authenticated}, nil)
}

// RefreshIdentity asks the server again who the current token belongs to.
// A token the server rejects ends the session; other failures keep it.
func (m *Manager) RefreshIdentity(ctx context.Context) error {
	m.mu.Lock()
	token := m.state.Token
	if token == "" {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	acc, err := m.api.WhoAmI(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if cerr := m.commit(ctx, gen, State{}, m.store.Clear); errors.Is(cerr, ErrSuperseded) {
				return cerr
			}
		} else {
			m.abandon(ctx, gen)
		}
		return err
	}

	return m.commit(ctx, gen, State{Token: token, Identity: acc, Status: Authenticated}, nil)
}

// Logout forgets the session. Calling it again is a no-op apart from
// clearing the store once more.
func (m *Manager) Logout(ctx context.Context) error {
	return m.commit(ctx, m.begin(), State{}, m.store.Clear)
}

func (m *Manager) begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

// abandon settles a session left resolving by an operation that gen
// superseded and then failed itself.
func (m *Manager) abandon(ctx context.Context, gen uint64) {
	_ = m.commitIf(ctx, gen, func(cur State) bool { return cur.Status == Resolving }, State{}, m.store.Clear)
}

func (m *Manager) commit(ctx context.Context, gen uint64, next State, persist func(context.Context) error) error {
	return m.commitIf(ctx, gen, nil, next, persist)
}

// commitIf installs next when gen is still the latest generation and cond
// (if any) holds for the current state. persist runs under the same lock,
// so a superseded operation can never touch the store. The state is
// installed even when persist fails; its error is returned.
func (m *Manager) commitIf(ctx context.Context, gen uint64, cond func(State) bool, next State, persist func(context.Context) error) error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return ErrSuperseded
	}
	if cond != nil && !cond(m.state) {
		m.mu.Unlock()
		return nil
	}

	var err error
	if persist != nil {
		err = persist(context.WithoutCancel(ctx))
	}
	m.setLocked(next)

	subs := make([]func(State), 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s.fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return err
}

func (m *Manager) setLocked(next State) {
	prev := m.state.Status
	m.state = next

	switch {
	case next.Status == Resolving && prev != Resolving:
		m.settled = make(chan struct{})
	case next.Status != Resolving && prev == Resolving:
		close(m.settled)
	}
}
