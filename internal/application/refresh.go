package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// startRefresh arms the background refresh loop if it is not already
// running. The loop is owned by the session lifecycle: armed on
// login/register/hydrate-with-user, disarmed by Logout and Close.
func (e *Engine) startRefresh() {
	e.mu.Lock()
	if e.refreshCancel != nil {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.refreshCancel = cancel
	e.refreshDone = done
	e.mu.Unlock()

	go e.refreshLoop(ctx, done)
}

// refreshLoop re-syncs the active account on a fixed interval. This is how
// externally-caused balance changes become visible without user action.
// Tick failures are logged and ignored; the next tick retries from scratch.
func (e *Engine) refreshLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.Debug("background refresh stopped", slog.String("reason", ctx.Err().Error()))
			return
		case <-ticker.C:
			e.mu.Lock()
			var email string
			if e.session.User != nil {
				email = e.session.User.Email
			}
			e.mu.Unlock()
			if email == "" {
				continue
			}

			if err := e.syncAccount(ctx, email); err != nil {
				e.log.Warn("background sync failed",
					slog.String("email", email),
					slog.String("kind", string(domain.KindOf(err))),
					slog.String("error", err.Error()))
			}
		}
	}
}
