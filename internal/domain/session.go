package domain

import "time"

// Session is the engine-owned local snapshot of account state. It is a
// cache, never a ledger: balance-affecting operations round-trip through
// the backend before any field here is trusted.
type Session struct {
	User         *User
	Transactions []Transaction
	LoggedIn     bool
	Loading      bool

	// LastSyncedAt is when the backend last confirmed this snapshot. Zero
	// for hydrated-from-cache state that has not been re-synced yet.
	LastSyncedAt time.Time
}

// Clone returns a value copy safe to hand to readers while the engine keeps
// mutating its own session.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.Transactions != nil {
		out.Transactions = make([]Transaction, len(s.Transactions))
		copy(out.Transactions, s.Transactions)
	}
	return out
}
