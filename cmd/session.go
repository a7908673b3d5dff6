package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// hydrate restores the persisted session for this invocation. A corrupt
// cache degrades to an empty session rather than blocking the command.
func hydrate(cmd *cobra.Command, app *app) {
	if err := app.engine.Hydrate(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not read cached session: %v\n", err)
	}
}

// requireSession hydrates and fails if nobody is logged in.
func requireSession(cmd *cobra.Command, app *app) (domain.Session, error) {
	hydrate(cmd, app)

	session := app.engine.Snapshot()
	if session.User == nil {
		return domain.Session{}, fmt.Errorf("not logged in; run 'pw login <email>' first")
	}
	return session, nil
}

// refreshSession runs one sync cycle, falling back to the cached snapshot
// when the backend is unreachable so the caller still has data to show.
func refreshSession(cmd *cobra.Command, app *app) domain.Session {
	if err := app.engine.Refresh(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not reach the bank, showing cached data: %v\n", err)
	}
	return app.engine.Snapshot()
}
