package toml

import (
	"fmt"
	"time"

	"github.com/nvallen/paywise-cli/internal/domain"
)

const currentSchemaVersion = 1

type userFileSchema struct {
	Version int         `toml:"version"`
	User    *userSchema `toml:"user"`
}

func (s *userFileSchema) validateVersion() error {
	return validateVersion(s.Version)
}

type historyFileSchema struct {
	Version      int                 `toml:"version"`
	Transactions []transactionSchema `toml:"transactions"`
}

func (s *historyFileSchema) validateVersion() error {
	return validateVersion(s.Version)
}

type sessionFileSchema struct {
	Version  int  `toml:"version"`
	LoggedIn bool `toml:"logged_in"`
}

func (s *sessionFileSchema) validateVersion() error {
	return validateVersion(s.Version)
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported cache schema version %d (current %d)", version, currentSchemaVersion)
	}
	return nil
}

type userSchema struct {
	ID           string  `toml:"id"`
	Name         string  `toml:"name"`
	Email        string  `toml:"email"`
	Phone        string  `toml:"phone,omitempty"`
	Balance      float64 `toml:"balance"`
	ProfileImage string  `toml:"profile_image,omitempty"`
	RewardPoints int     `toml:"reward_points"`
}

func toUserSchema(user domain.User) userSchema {
	return userSchema{
		ID:           string(user.ID),
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Balance:      user.Balance,
		ProfileImage: user.ProfileImage,
		RewardPoints: user.RewardPoints,
	}
}

func (s userSchema) toDomain() domain.User {
	return domain.User{
		ID:           domain.UserID(s.ID),
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Balance:      s.Balance,
		ProfileImage: s.ProfileImage,
		RewardPoints: s.RewardPoints,
	}
}

// transactionSchema stores the normalized form: counterparty is the display
// name resolved at sync time, so hydration never needs the directory.
type transactionSchema struct {
	ID           string  `toml:"id"`
	Direction    string  `toml:"direction"`
	Amount       float64 `toml:"amount"`
	Date         string  `toml:"date"`
	Counterparty string  `toml:"counterparty"`
	Status       string  `toml:"status"`
}

func toTransactionSchema(transaction domain.Transaction) transactionSchema {
	return transactionSchema{
		ID:           transaction.ID,
		Direction:    string(transaction.Direction),
		Amount:       transaction.Amount,
		Date:         transaction.Date.UTC().Format(time.RFC3339),
		Counterparty: transaction.Counterparty(),
		Status:       string(transaction.Status),
	}
}

func (s transactionSchema) toDomain() domain.Transaction {
	date, err := time.Parse(time.RFC3339, s.Date)
	if err != nil {
		date = time.Time{}
	}

	transaction := domain.Transaction{
		ID:        s.ID,
		Direction: domain.Direction(s.Direction),
		Amount:    s.Amount,
		Date:      date,
		Status:    domain.TransactionStatus(s.Status),
	}
	if transaction.Direction == domain.DirectionSend {
		transaction.Recipient = s.Counterparty
	} else {
		transaction.Sender = s.Counterparty
	}
	return transaction
}
