package ports

import (
	"context"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// SessionCache persists the three session entries across process restarts.
// Load methods return domain.ErrNotCached when the entry is absent; entries
// are independent and any subset may survive a restart.
type SessionCache interface {
	LoadUser(ctx context.Context) (domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []domain.Transaction) error
	LoadLoggedIn(ctx context.Context) (bool, error)
	SaveLoggedIn(ctx context.Context, loggedIn bool) error
	Clear(ctx context.Context) error
}
