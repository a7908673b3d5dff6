// Package application holds the synchronization engine: the single owner of
// the local session snapshot, reconciling it against the banking backend and
// serializing every financial mutation through it.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nvallen/paywise-cli/internal/domain"
	"github.com/nvallen/paywise-cli/internal/ports"
)

const DefaultSyncInterval = 12 * time.Second

// Engine owns the session. All mutations go through its methods; readers
// get value-copy snapshots. A failed operation never leaves the session
// partially mutated.
type Engine struct {
	gateway  ports.AccountGateway
	cache    ports.SessionCache
	clock    ports.Clock
	log      *slog.Logger
	validate *validator.Validate
	interval time.Duration

	// test seam for money-movement request IDs
	newRequestID func() string

	mu      sync.Mutex
	session domain.Session
	// epoch is bumped by Logout; sync results captured under an older epoch
	// are discarded so a late sync cannot resurrect a cleared session.
	epoch uint64
	// sync ordering: results apply only if no later-issued replacement has
	// already been applied (last-issued wins, not last-completed).
	nextSeq     uint64
	lastApplied uint64

	refreshCancel context.CancelFunc
	refreshDone   chan struct{}

	subsMu sync.Mutex
	subs   []chan domain.Session
}

func NewEngine(gateway ports.AccountGateway, cache ports.SessionCache, clock ports.Clock, log *slog.Logger, interval time.Duration) *Engine {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	return &Engine{
		gateway:      gateway,
		cache:        cache,
		clock:        clock,
		log:          log,
		validate:     newValidator(),
		interval:     interval,
		newRequestID: uuid.NewString,
		session:      domain.Session{Loading: true},
	}
}

// Snapshot returns a value copy of the current session.
func (e *Engine) Snapshot() domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// Subscribe returns a channel that receives a snapshot after every applied
// state change. The channel holds only the latest snapshot; slow readers
// see the newest state, not every intermediate one.
func (e *Engine) Subscribe() <-chan domain.Session {
	ch := make(chan domain.Session, 1)
	e.subsMu.Lock()
	e.subs = append(e.subs, ch)
	e.subsMu.Unlock()
	return ch
}

// Hydrate populates the session from the persisted cache without contacting
// the backend. Missing or unreadable entries leave the session empty; the
// loading flag clears either way. If a cached user is present the
// background refresh loop is armed.
func (e *Engine) Hydrate(ctx context.Context) error {
	user, userErr := e.cache.LoadUser(ctx)
	transactions, transactionsErr := e.cache.LoadTransactions(ctx)
	loggedIn, loggedInErr := e.cache.LoadLoggedIn(ctx)

	e.mu.Lock()
	if userErr == nil {
		hydrated := user
		e.session.User = &hydrated
	}
	if transactionsErr == nil {
		e.session.Transactions = transactions
	}
	if loggedInErr == nil {
		e.session.LoggedIn = loggedIn
	}
	e.session.Loading = false
	hasUser := e.session.User != nil
	snapshot := e.session.Clone()
	e.mu.Unlock()

	e.publish(snapshot)
	if hasUser {
		e.startRefresh()
	}

	var failures []error
	for _, err := range []error{userErr, transactionsErr, loggedInErr} {
		if err != nil && !errors.Is(err, domain.ErrNotCached) {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		err := domain.Classify(domain.KindPersistence, fmt.Errorf("hydrate: %w", errors.Join(failures...)))
		e.log.Warn("cache hydration failed, starting with empty session", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Login resolves the account by email and performs a full sync. On failure
// the session is untouched and stays logged out.
func (e *Engine) Login(ctx context.Context, email string) error {
	if err := e.validate.Var(email, "required,email"); err != nil {
		return domain.Classify(domain.KindValidation, fmt.Errorf("invalid email: %w", err))
	}

	if err := e.syncAccount(ctx, email); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	e.startRefresh()
	return nil
}

// Register creates the account on the backend and replaces the session with
// the created user and an empty history.
func (e *Engine) Register(ctx context.Context, cmd RegisterCommand) error {
	if err := e.validateCommand(cmd); err != nil {
		return err
	}

	created, err := e.gateway.Register(ctx, cmd.Name, cmd.Email, cmd.Phone)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	e.mu.Lock()
	e.lastApplied = e.claimSeqLocked()
	user := created
	e.session.User = &user
	e.session.Transactions = []domain.Transaction{}
	e.session.LoggedIn = true
	e.session.LastSyncedAt = e.clock.Now()
	persistErr := e.persistLocked(ctx, created, e.session.Transactions)
	snapshot := e.session.Clone()
	e.mu.Unlock()

	e.publish(snapshot)
	e.startRefresh()

	if persistErr != nil {
		e.log.Warn("persisting registered session failed", slog.String("error", persistErr.Error()))
		return domain.Classify(domain.KindPersistence, fmt.Errorf("register: %w", persistErr))
	}
	return nil
}

// Logout clears the session, deletes the persisted entries, and disarms the
// refresh loop. The epoch bump guarantees an in-flight sync completing
// after this point is discarded.
func (e *Engine) Logout(ctx context.Context) error {
	e.mu.Lock()
	e.epoch++
	e.session = domain.Session{}
	cancel := e.refreshCancel
	done := e.refreshDone
	e.refreshCancel = nil
	e.refreshDone = nil
	snapshot := e.session.Clone()
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	e.publish(snapshot)

	if err := e.cache.Clear(ctx); err != nil {
		e.log.Warn("clearing session cache failed", slog.String("error", err.Error()))
		return domain.Classify(domain.KindPersistence, fmt.Errorf("logout: %w", err))
	}
	return nil
}

// UpdateProfile sends a partial name/phone edit, filling omitted fields from
// the current user, and adopts the backend's returned record wholesale so
// concurrent server-side changes are picked up.
func (e *Engine) UpdateProfile(ctx context.Context, cmd ProfileUpdateCommand) error {
	if err := e.validateCommand(cmd); err != nil {
		return err
	}

	current, err := e.currentUser()
	if err != nil {
		return err
	}

	name := cmd.Name
	if name == "" {
		name = current.Name
	}
	phone := cmd.Phone
	if phone == "" {
		phone = current.Phone
	}

	updated, err := e.gateway.UpdateProfile(ctx, current.Email, name, phone)
	if err != nil {
		e.log.Warn("profile update failed",
			slog.String("email", current.Email),
			slog.String("kind", string(domain.KindOf(err))),
			slog.String("error", err.Error()))
		return fmt.Errorf("update profile: %w", err)
	}

	return e.applyUser(ctx, current.Email, updated)
}

// SubmitTransaction performs a send or receive against the backend and then
// re-syncs to pull the authoritative post-transaction balance and history.
// The session is never optimistically mutated.
func (e *Engine) SubmitTransaction(ctx context.Context, cmd TransferCommand) error {
	if err := e.validateCommand(cmd); err != nil {
		return err
	}

	user, err := e.currentUser()
	if err != nil {
		return err
	}

	requestID := e.newRequestID()
	switch cmd.Direction {
	case domain.DirectionSend:
		err = e.gateway.Send(ctx, ports.SendRequest{
			RequestID:   requestID,
			SenderEmail: user.Email,
			Recipient:   cmd.Counterparty,
			Amount:      cmd.Amount,
		})
	case domain.DirectionReceive:
		err = e.gateway.Receive(ctx, ports.ReceiveRequest{
			RequestID:     requestID,
			ReceiverEmail: user.Email,
			Amount:        cmd.Amount,
		})
	}
	if err != nil {
		return fmt.Errorf("submit transaction: %w", err)
	}

	// the money moved; a failed follow-up sync only delays visibility
	if err := e.syncAccount(ctx, user.Email); err != nil {
		e.log.Warn("post-transaction sync failed, balance may lag until next refresh",
			slog.String("email", user.Email),
			slog.String("error", err.Error()))
	}
	return nil
}

// RedeemReward spends reward points on a product. The cached point balance
// gates the call; the backend re-validates authoritatively. The follow-up
// claim notification is best-effort and never rolls back the redemption.
func (e *Engine) RedeemReward(ctx context.Context, product domain.Product) error {
	user, err := e.currentUser()
	if err != nil {
		return err
	}

	if user.RewardPoints < product.PointsRequired {
		return fmt.Errorf("redeem %s: need %d points, have %d: %w",
			product.Name, product.PointsRequired, user.RewardPoints, domain.ErrInsufficientPoints)
	}

	updated, err := e.gateway.Redeem(ctx, user.Email, product.PointsRequired, product.Name)
	if err != nil {
		return fmt.Errorf("redeem %s: %w", product.Name, err)
	}

	// the redemption is committed server-side from here on; a failed cache
	// write must not make it look rejected
	if err := e.applyUser(ctx, user.Email, updated); err != nil {
		e.log.Warn("persisting redeemed points failed, cache lags until next sync",
			slog.String("product", product.Name),
			slog.String("error", err.Error()))
	}

	if err := e.gateway.NotifyRewardClaim(ctx, user.Email, product.Name, product.PointsRequired); err != nil {
		e.log.Warn("reward claim notification failed",
			slog.String("product", product.Name),
			slog.String("error", err.Error()))
	}
	return nil
}

// SubmitLoanRequest files a loan application. Loans do not touch the cached
// balance or points, so the session is left alone on success and failure.
func (e *Engine) SubmitLoanRequest(ctx context.Context, cmd LoanCommand) error {
	if err := e.validateCommand(cmd); err != nil {
		return err
	}

	user, err := e.currentUser()
	if err != nil {
		return err
	}

	if err := e.gateway.RequestLoan(ctx, ports.LoanRequest{
		Email:          user.Email,
		Amount:         cmd.Amount,
		DurationMonths: cmd.DurationMonths,
		Purpose:        cmd.Purpose,
	}); err != nil {
		return fmt.Errorf("loan request: %w", err)
	}
	return nil
}

// Refresh runs one sync cycle for the logged-in user.
func (e *Engine) Refresh(ctx context.Context) error {
	user, err := e.currentUser()
	if err != nil {
		return err
	}
	return e.syncAccount(ctx, user.Email)
}

// Close disarms the refresh loop and closes subscriber channels.
func (e *Engine) Close() {
	e.mu.Lock()
	cancel := e.refreshCancel
	done := e.refreshDone
	e.refreshCancel = nil
	e.refreshDone = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	e.subsMu.Lock()
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
	e.subsMu.Unlock()
}

// syncAccount fetches the user record and history concurrently, resolves
// counterparty names through the user directory, and replaces the session
// wholesale. Any failed step aborts with zero partial replacement.
func (e *Engine) syncAccount(ctx context.Context, email string) error {
	e.mu.Lock()
	epoch := e.epoch
	seq := e.claimSeqLocked()
	e.mu.Unlock()

	type userResult struct {
		user domain.User
		err  error
	}
	type historyResult struct {
		records []domain.TransactionRecord
		err     error
	}

	userCh := make(chan userResult, 1)
	historyCh := make(chan historyResult, 1)
	go func() {
		user, err := e.gateway.UserByEmail(ctx, email)
		userCh <- userResult{user: user, err: err}
	}()
	go func() {
		records, err := e.gateway.TransactionsByEmail(ctx, email)
		historyCh <- historyResult{records: records, err: err}
	}()

	fetchedUser := <-userCh
	fetchedHistory := <-historyCh
	if fetchedUser.err != nil {
		return fmt.Errorf("sync account: %w", fetchedUser.err)
	}
	if fetchedHistory.err != nil {
		return fmt.Errorf("sync account history: %w", fetchedHistory.err)
	}

	directory, err := e.gateway.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("sync account directory: %w", err)
	}

	transactions := normalizeTransactions(fetchedHistory.records, directoryNames(directory))

	e.mu.Lock()
	if e.epoch != epoch {
		e.mu.Unlock()
		e.log.Debug("discarding sync result issued before logout", slog.String("email", email))
		return nil
	}
	if seq < e.lastApplied {
		e.mu.Unlock()
		e.log.Debug("discarding sync result superseded by a later one", slog.String("email", email))
		return nil
	}
	e.lastApplied = seq
	user := fetchedUser.user
	e.session.User = &user
	e.session.Transactions = transactions
	e.session.LoggedIn = true
	e.session.LastSyncedAt = e.clock.Now()
	persistErr := e.persistLocked(ctx, user, transactions)
	snapshot := e.session.Clone()
	e.mu.Unlock()

	e.publish(snapshot)

	if persistErr != nil {
		e.log.Warn("persisting synced session failed",
			slog.String("email", email),
			slog.String("error", persistErr.Error()))
		return domain.Classify(domain.KindPersistence, fmt.Errorf("sync account: %w", persistErr))
	}
	return nil
}

// applyUser replaces the session user with a backend-returned record,
// unless the session moved on (logout or different account) while the
// request was in flight.
func (e *Engine) applyUser(ctx context.Context, email string, updated domain.User) error {
	e.mu.Lock()
	if e.session.User == nil || e.session.User.Email != email {
		e.mu.Unlock()
		e.log.Debug("discarding user update for inactive session", slog.String("email", email))
		return nil
	}
	user := updated
	e.session.User = &user
	persistErr := e.cache.SaveUser(ctx, updated)
	snapshot := e.session.Clone()
	e.mu.Unlock()

	e.publish(snapshot)

	if persistErr != nil {
		e.log.Warn("persisting user failed", slog.String("error", persistErr.Error()))
		return domain.Classify(domain.KindPersistence, fmt.Errorf("persist user: %w", persistErr))
	}
	return nil
}

// persistLocked writes the three cache entries. Caller holds e.mu, so no
// other operation interleaves between the session replacement and the
// persistence write.
func (e *Engine) persistLocked(ctx context.Context, user domain.User, transactions []domain.Transaction) error {
	var errs []error
	if err := e.cache.SaveUser(ctx, user); err != nil {
		errs = append(errs, err)
	}
	if err := e.cache.SaveTransactions(ctx, transactions); err != nil {
		errs = append(errs, err)
	}
	if err := e.cache.SaveLoggedIn(ctx, true); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) claimSeqLocked() uint64 {
	e.nextSeq++
	return e.nextSeq
}

func (e *Engine) currentUser() (domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.User == nil {
		return domain.User{}, domain.ErrNotLoggedIn
	}
	return *e.session.User, nil
}

func (e *Engine) publish(snapshot domain.Session) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}
