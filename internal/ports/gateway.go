package ports

import (
	"context"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// SendRequest describes an outgoing money movement. RequestID is a
// client-generated idempotency handle attached to the call.
type SendRequest struct {
	RequestID   string
	SenderEmail string
	Recipient   string
	Amount      float64
}

type ReceiveRequest struct {
	RequestID     string
	ReceiverEmail string
	Amount        float64
}

type LoanRequest struct {
	Email          string
	Amount         float64
	DurationMonths int
	Purpose        string
}

// AccountGateway is the stateless request/response interface to the banking
// backend of record.
type AccountGateway interface {
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	Register(ctx context.Context, name, email, phone string) (domain.User, error)
	UpdateProfile(ctx context.Context, email, name, phone string) (domain.User, error)
	TransactionsByEmail(ctx context.Context, email string) ([]domain.TransactionRecord, error)
	Send(ctx context.Context, req SendRequest) error
	Receive(ctx context.Context, req ReceiveRequest) error
	Redeem(ctx context.Context, email string, points int, productName string) (domain.User, error)
	NotifyRewardClaim(ctx context.Context, email, productName string, pointsUsed int) error
	RequestLoan(ctx context.Context, req LoanRequest) error
}
