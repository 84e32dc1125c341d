package backendfakes

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-recipes-client/session"
	"github.com/jrsteele09/go-recipes-client/token"
)

var _ session.Backend = (*FakeBackend)(nil)

// FakeBackend is a scriptable session.Backend for tests. Assign the *Func
// fields to control behaviour; unassigned operations fail.
type FakeBackend struct {
	lock sync.Mutex

	LoginFunc    func(ctx context.Context, email, password string) (token.Pair, error)
	RegisterFunc func(ctx context.Context, email, password string) error
	RefreshFunc  func(ctx context.Context, refreshToken string) (token.Pair, error)

	loginCalls    int
	registerCalls int
	refreshCalls  int

	lastRefreshToken string
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

func (fb *FakeBackend) Login(ctx context.Context, email, password string) (token.Pair, error) {
	fb.lock.Lock()
	fb.loginCalls++
	loginFunc := fb.LoginFunc
	fb.lock.Unlock()

	if loginFunc == nil {
		return token.Pair{}, errors.New("FakeBackend.Login not configured")
	}
	return loginFunc(ctx, email, password)
}

func (fb *FakeBackend) Register(ctx context.Context, email, password string) error {
	fb.lock.Lock()
	fb.registerCalls++
	registerFunc := fb.RegisterFunc
	fb.lock.Unlock()

	if registerFunc == nil {
		return errors.New("FakeBackend.Register not configured")
	}
	return registerFunc(ctx, email, password)
}

func (fb *FakeBackend) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	fb.lock.Lock()
	fb.refreshCalls++
	fb.lastRefreshToken = refreshToken
	refreshFunc := fb.RefreshFunc
	fb.lock.Unlock()

	if refreshFunc == nil {
		return token.Pair{}, errors.New("FakeBackend.Refresh not configured")
	}
	return refreshFunc(ctx, refreshToken)
}

func (fb *FakeBackend) LoginCallCount() int {
	fb.lock.Lock()
	defer fb.lock.Unlock()
	return fb.loginCalls
}

func (fb *FakeBackend) RegisterCallCount() int {
	fb.lock.Lock()
	defer fb.lock.Unlock()
	return fb.registerCalls
}

func (fb *FakeBackend) RefreshCallCount() int {
	fb.lock.Lock()
	defer fb.lock.Unlock()
	return fb.refreshCalls
}

// LastRefreshToken returns the refresh token from the most recent Refresh call.
func (fb *FakeBackend) LastRefreshToken() string {
	fb.lock.Lock()
	defer fb.lock.Unlock()
	return fb.lastRefreshToken
}
