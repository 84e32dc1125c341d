// Package session owns the client-side authentication state: the in-memory
// token pair, proactive refresh scheduling and the single-flight refresh
// gate. Screens read the derived attributes and invoke the operations;
// nothing else touches the tokens or the store directly.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-recipes-client/store"
	"github.com/jrsteele09/go-recipes-client/token"
)

// Backend is the slice of the REST API the manager drives: the credential
// exchanges that mint and renew token pairs.
type Backend interface {
	Login(ctx context.Context, email, password string) (token.Pair, error)
	Register(ctx context.Context, email, password string) error
	Refresh(ctx context.Context, refreshToken string) (token.Pair, error)
}

const (
	// Refresh this long before the access token expires.
	defaultRefreshLead = time.Minute
	// Never arm the refresh timer closer to now than this, so rapid token
	// churn cannot turn into a refresh storm.
	defaultMinDelay = 10 * time.Second

	refreshGroupKey = "refresh"
)

// Manager is the process-wide session. Construct it with New, call Restore
// once at startup, and Close when the process shuts down.
type Manager struct {
	backend Backend
	store   store.Store
	log     zerolog.Logger

	refreshLead time.Duration
	minDelay    time.Duration
	nowFunc     func() time.Time

	group singleflight.Group

	lock    sync.Mutex
	access  string
	refresh string
	loading bool
	timer   *time.Timer

	// generation moves whenever the session identity changes (login, logout,
	// token adoption). An in-flight refresh records the generation it started
	// from and discards its result if the session has moved on, so a stale
	// exchange cannot resurrect a logged-out session.
	generation uint64
}

// ManagerOption modifies the Manager configuration.
type ManagerOption func(*Manager)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = nowFunc
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithRefreshWindow overrides the proactive refresh lead time and the
// minimum scheduling delay.
func WithRefreshWindow(lead, minDelay time.Duration) ManagerOption {
	return func(m *Manager) {
		m.refreshLead = lead
		m.minDelay = minDelay
	}
}

// New creates a Manager. The session reports Loading until Restore has run.
func New(backend Backend, tokenStore store.Store, options ...ManagerOption) (*Manager, error) {
	if backend == nil {
		return nil, errors.New("[session.New] backend is required")
	}
	if tokenStore == nil {
		return nil, errors.New("[session.New] token store is required")
	}

	m := &Manager{
		backend:     backend,
		store:       tokenStore,
		log:         zerolog.Nop(),
		refreshLead: defaultRefreshLead,
		minDelay:    defaultMinDelay,
		nowFunc:     time.Now,
		loading:     true,
	}

	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Restore loads any persisted token pair and settles the session into an
// authenticated or anonymous state. Call it once at process start; Loading
// reports true until it returns. A stored pair that cannot carry a session
// any more is cleared rather than kept around half-dead.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.lock.Lock()
		m.loading = false
		m.lock.Unlock()
	}()

	access := m.storedValue(ctx, store.KeyAccessToken)
	refresh := m.storedValue(ctx, store.KeyRefreshToken)
	now := m.nowFunc()

	switch {
	case access != "" && !token.IsExpired(access, now):
		m.lock.Lock()
		m.access = access
		m.refresh = refresh
		m.scheduleRefreshLocked()
		m.lock.Unlock()
		m.log.Debug().Msg("session: restored stored access token")
	case refresh != "" && !token.IsExpired(refresh, now):
		m.lock.Lock()
		m.refresh = refresh
		m.lock.Unlock()
		m.RefreshSession(ctx)
	default:
		m.Logout(ctx)
	}
}

// Login exchanges credentials for a token pair and adopts it. Backend
// rejections are returned to the caller unchanged so forms can show the
// server's message; on failure the session state is untouched.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}

	pair, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	return m.installLocked(ctx, pair)
}

// Register creates the account and then logs in with the same credentials;
// registration on its own does not yield a session.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}

	if err := m.backend.Register(ctx, email, password); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// UpdateTokens adopts a token pair handed back outside the login flow, such
// as the fresh pair issued by a plan change. refreshToken may be empty to
// keep the current one.
func (m *Manager) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken == "" {
		return errors.New("[session.UpdateTokens] access token is required")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	return m.installLocked(ctx, token.Pair{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout cancels the refresh timer, clears the stored and in-memory tokens
// and leaves the session anonymous. Safe to call any number of times.
func (m *Manager) Logout(ctx context.Context) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.logoutLocked(ctx)
}

// RefreshSession exchanges the refresh token for a new pair. Concurrent
// callers (the proactive timer, 401 handling, startup) collapse into a
// single network call and observe the same outcome. Failures are absorbed:
// an unusable or rejected refresh token logs the session out and the call
// reports no new token rather than an error.
func (m *Manager) RefreshSession(ctx context.Context) (string, bool) {
	result, _, _ := m.group.Do(refreshGroupKey, func() (interface{}, error) {
		return m.refreshOnce(ctx), nil
	})

	accessToken, _ := result.(string)
	return accessToken, accessToken != ""
}

// Close stops the proactive refresh timer. The persisted session survives.
func (m *Manager) Close() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stopTimerLocked()
}

// AccessToken returns the current bearer credential, or "" when anonymous.
func (m *Manager) AccessToken() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.access
}

// Authenticated reports whether a session credential is held.
func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// Plan derives the subscription tier from the current access token.
func (m *Manager) Plan() token.Plan {
	return token.PlanOf(m.AccessToken())
}

// Loading reports whether the startup restore is still running.
func (m *Manager) Loading() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.loading
}

func (m *Manager) refreshOnce(ctx context.Context) string {
	m.lock.Lock()
	refresh := m.refresh
	startGeneration := m.generation
	m.lock.Unlock()

	if refresh == "" || token.IsExpired(refresh, m.nowFunc()) {
		m.log.Info().Msg("session: refresh token missing or expired, logging out")
		m.Logout(ctx)
		return ""
	}

	pair, err := m.backend.Refresh(ctx, refresh)
	if err != nil {
		m.log.Warn().Err(err).Msg("session: refresh exchange failed, logging out")
		m.Logout(ctx)
		return ""
	}
	if pair.AccessToken == "" {
		m.log.Warn().Msg("session: refresh exchange returned no access token, logging out")
		m.Logout(ctx)
		return ""
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.generation != startGeneration {
		// Logout or a new login landed while the exchange was in flight;
		// adopting this result would resurrect a session the user discarded.
		m.log.Info().Msg("session: discarding refresh result for a stale session")
		return ""
	}

	if err := m.installLocked(ctx, pair); err != nil {
		m.log.Warn().Err(err).Msg("session: adopting refreshed tokens failed, logging out")
		m.logoutLocked(ctx)
		return ""
	}
	return pair.AccessToken
}

// installLocked persists and adopts a token pair and re-arms the proactive
// refresh timer. Caller holds m.lock.
func (m *Manager) installLocked(ctx context.Context, pair token.Pair) error {
	if err := m.store.Set(ctx, store.KeyAccessToken, pair.AccessToken); err != nil {
		return errors.Wrap(err, "session: persisting access token")
	}
	if pair.RefreshToken != "" {
		if err := m.store.Set(ctx, store.KeyRefreshToken, pair.RefreshToken); err != nil {
			return errors.Wrap(err, "session: persisting refresh token")
		}
	}

	m.access = pair.AccessToken
	if pair.RefreshToken != "" {
		m.refresh = pair.RefreshToken
	}
	m.generation++
	m.scheduleRefreshLocked()
	return nil
}

// logoutLocked runs the full logout sequence. Store failures are logged,
// never surfaced: logout must not be able to fail. Caller holds m.lock.
func (m *Manager) logoutLocked(ctx context.Context) {
	m.stopTimerLocked()

	if err := m.store.Remove(ctx, store.KeyAccessToken); err != nil {
		m.log.Warn().Err(err).Msg("session: removing stored access token")
	}
	if err := m.store.Remove(ctx, store.KeyRefreshToken); err != nil {
		m.log.Warn().Err(err).Msg("session: removing stored refresh token")
	}

	m.access = ""
	m.refresh = ""
	m.generation++
}

// scheduleRefreshLocked arms the proactive refresh timer for the current
// access token: refreshLead before expiry, but never in the past and never
// closer to now than minDelay. Arming cancels any previous timer, so at
// most one is ever pending. Caller holds m.lock.
func (m *Manager) scheduleRefreshLocked() {
	m.stopTimerLocked()

	exp, ok := token.Expiration(m.access)
	if !ok {
		return
	}

	now := m.nowFunc()
	refreshAt := exp.Add(-m.refreshLead)
	if earliest := now.Add(m.minDelay); refreshAt.Before(earliest) {
		refreshAt = earliest
	}

	m.log.Debug().Time("refresh_at", refreshAt).Msg("session: proactive refresh scheduled")
	m.timer = time.AfterFunc(refreshAt.Sub(now), func() {
		m.RefreshSession(context.Background())
	})
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) storedValue(ctx context.Context, key string) string {
	value, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Warn().Err(err).Str("key", key).Msg("session: reading stored token")
		}
		return ""
	}
	return value
}
