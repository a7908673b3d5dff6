package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

// fakeGateway is an in-memory AccountGateway with per-endpoint error
// injection and a hook for ordering concurrent fetches.
type fakeGateway struct {
	mu      sync.Mutex
	users   map[string]domain.User
	history map[string][]domain.TransactionRecord
	calls   []string

	userErr     error
	listErr     error
	historyErr  error
	registerErr error
	updateErr   error
	sendErr     error
	receiveErr  error
	redeemErr   error
	notifyErr   error
	loanErr     error

	updateReturn *domain.User
	redeemReturn *domain.User

	lastSend    ports.SendRequest
	lastReceive ports.ReceiveRequest
	lastLoan    ports.LoanRequest
	lastUpdate  [3]string

	// userHook runs at the start of UserByEmail, outside the lock, so tests
	// can stall one sync while another completes.
	userHook func(email string)
}

var _ ports.AccountGateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		users:   map[string]domain.User{},
		history: map[string][]domain.TransactionRecord{},
	}
}

func (g *fakeGateway) record(name string) {
	g.mu.Lock()
	g.calls = append(g.calls, name)
	g.mu.Unlock()
}

func (g *fakeGateway) callCount(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	count := 0
	for _, call := range g.calls {
		if call == name {
			count++
		}
	}
	return count
}

func (g *fakeGateway) setBalance(email string, balance float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	user := g.users[email]
	user.Balance = balance
	g.users[email] = user
}

func (g *fakeGateway) UserByEmail(_ context.Context, email string) (domain.User, error) {
	g.record("UserByEmail")
	g.mu.Lock()
	hook := g.userHook
	g.mu.Unlock()
	if hook != nil {
		hook(email)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.userErr != nil {
		return domain.User{}, g.userErr
	}
	user, ok := g.users[email]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrUserNotFound)
	}
	return user, nil
}

func (g *fakeGateway) ListUsers(context.Context) ([]domain.User, error) {
	g.record("ListUsers")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	users := make([]domain.User, 0, len(g.users))
	for _, user := range g.users {
		users = append(users, user)
	}
	return users, nil
}

func (g *fakeGateway) Register(_ context.Context, name, email, phone string) (domain.User, error) {
	g.record("Register")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.registerErr != nil {
		return domain.User{}, g.registerErr
	}
	created := domain.User{ID: domain.UserID(email), Name: name, Email: email, Phone: phone}
	g.users[email] = created
	return created, nil
}

func (g *fakeGateway) UpdateProfile(_ context.Context, email, name, phone string) (domain.User, error) {
	g.record("UpdateProfile")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastUpdate = [3]string{email, name, phone}
	if g.updateErr != nil {
		return domain.User{}, g.updateErr
	}
	if g.updateReturn != nil {
		return *g.updateReturn, nil
	}
	user := g.users[email]
	user.Name = name
	user.Phone = phone
	g.users[email] = user
	return user, nil
}

func (g *fakeGateway) TransactionsByEmail(_ context.Context, email string) ([]domain.TransactionRecord, error) {
	g.record("TransactionsByEmail")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	return g.history[email], nil
}

func (g *fakeGateway) Send(_ context.Context, req ports.SendRequest) error {
	g.record("Send")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSend = req
	return g.sendErr
}

func (g *fakeGateway) Receive(_ context.Context, req ports.ReceiveRequest) error {
	g.record("Receive")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastReceive = req
	return g.receiveErr
}

func (g *fakeGateway) Redeem(_ context.Context, email string, points int, _ string) (domain.User, error) {
	g.record("Redeem")
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.redeemErr != nil {
		return domain.User{}, g.redeemErr
	}
	if g.redeemReturn != nil {
		return *g.redeemReturn, nil
	}
	user := g.users[email]
	user.RewardPoints -= points
	g.users[email] = user
	return user, nil
}

func (g *fakeGateway) NotifyRewardClaim(_ context.Context, _, _ string, _ int) error {
	g.record("NotifyRewardClaim")
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.notifyErr
}

func (g *fakeGateway) RequestLoan(_ context.Context, req ports.LoanRequest) error {
	g.record("RequestLoan")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastLoan = req
	return g.loanErr
}

// fakeCache is an in-memory SessionCache.
type fakeCache struct {
	mu              sync.Mutex
	user            *domain.User
	transactions    []domain.Transaction
	hasTransactions bool
	loggedIn        *bool

	loadUserErr error
	saveUserErr error
	clearErr    error
}

var _ ports.SessionCache = (*fakeCache)(nil)

func (c *fakeCache) LoadUser(context.Context) (domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadUserErr != nil {
		return domain.User{}, c.loadUserErr
	}
	if c.user == nil {
		return domain.User{}, domain.ErrNotCached
	}
	return *c.user, nil
}

func (c *fakeCache) SaveUser(_ context.Context, user domain.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveUserErr != nil {
		return c.saveUserErr
	}
	c.user = &user
	return nil
}

func (c *fakeCache) LoadTransactions(context.Context) ([]domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasTransactions {
		return nil, domain.ErrNotCached
	}
	out := make([]domain.Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out, nil
}

func (c *fakeCache) SaveTransactions(_ context.Context, transactions []domain.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transactions = transactions
	c.hasTransactions = true
	return nil
}

func (c *fakeCache) LoadLoggedIn(context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn == nil {
		return false, domain.ErrNotCached
	}
	return *c.loggedIn, nil
}

func (c *fakeCache) SaveLoggedIn(_ context.Context, loggedIn bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loggedIn = &loggedIn
	return nil
}

func (c *fakeCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clearErr != nil {
		return c.clearErr
	}
	c.user = nil
	c.transactions = nil
	c.hasTransactions = false
	c.loggedIn = nil
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
