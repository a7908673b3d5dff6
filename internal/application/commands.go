package application

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"github.com/nvallen/paywise-cli/internal/domain"
)

// RegisterCommand carries the profile fields for account creation. Balance
// and reward points are backend-assigned and never client-writable.
type RegisterCommand struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string
}

// ProfileUpdateCommand carries a partial profile edit. Empty fields fall
// back to the current values.
type ProfileUpdateCommand struct {
	Name  string
	Phone string
}

// TransferCommand describes a money movement. For send, Counterparty is the
// recipient identifier; receive needs no counterparty.
type TransferCommand struct {
	Direction    domain.Direction `validate:"required,oneof=send receive"`
	Amount       float64          `validate:"required,gt=0"`
	Counterparty string           `validate:"required_if=Direction send,omitempty,email"`
}

type LoanCommand struct {
	Amount         float64 `validate:"required,gt=0"`
	DurationMonths int     `validate:"required,gt=0,lte=360"`
	Purpose        string  `validate:"required,min=3"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (e *Engine) validateCommand(cmd any) error {
	if err := e.validate.Struct(cmd); err != nil {
		return domain.Classify(domain.KindValidation, fmt.Errorf("invalid input: %w", err))
	}
	return nil
}
