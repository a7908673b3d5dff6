package domain

import "time"

type Direction string

const (
	DirectionSend    Direction = "send"
	DirectionReceive Direction = "receive"
)

func (d Direction) Valid() bool {
	switch d {
	case DirectionSend, DirectionReceive:
		return true
	default:
		return false
	}
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionRecord is a history entry as the backend reports it, with the
// counterparty still identified by email.
type TransactionRecord struct {
	ID        string
	Direction Direction
	Amount    float64
	Date      time.Time
	PeerEmail string
	Status    TransactionStatus
}

// Transaction is a normalized history entry. Exactly one of Recipient and
// Sender is set: Recipient for send, Sender for receive. Both hold resolved
// display names, never raw emails, unless the directory had no entry for
// the counterparty.
type Transaction struct {
	ID        string
	Direction Direction
	Amount    float64
	Date      time.Time
	Recipient string
	Sender    string
	Status    TransactionStatus
}

// Counterparty returns whichever side of the transaction is not the
// session's own account.
func (t Transaction) Counterparty() string {
	if t.Direction == DirectionSend {
		return t.Recipient
	}
	return t.Sender
}
