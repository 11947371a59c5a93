// Package ledger keeps every account's current balance consistent with the
// transactions that reference it. All transaction mutations and the matching
// balance adjustments happen inside one storage transaction; nothing else in
// the codebase writes current_balance.
package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrInvalidType          = errors.New("type must be income or expense")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrMissingAccount       = errors.New("accountId is required")
	ErrMissingName          = errors.New("name is required")
	ErrMissingDate          = errors.New("date is required")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
)

// IsNotFound reports whether err is one of the referential errors, so HTTP
// handlers can map them to 404 without enumerating sentinels themselves.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrMissingAccount) ||
		errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrCategoryTypeMismatch)
}

// TransactionInput is the caller-supplied state of a transaction. The same
// shape serves create and update; on update every field is replaced.
type TransactionInput struct {
	AccountID   string
	CategoryID  *string
	Type        string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// AccountInput carries the caller-editable account fields. The current
// balance is not part of the contract.
type AccountInput struct {
	Name           string
	Description    string
	Currency       string
	InitialBalance decimal.Decimal
}

// signed returns the contribution of a transaction to its account balance:
// +amount for income, -amount for expense.
func signed(txType string, amount decimal.Decimal) decimal.Decimal {
	if txType == models.TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

func validateInput(in TransactionInput) error {
	if in.AccountID == "" {
		return ErrMissingAccount
	}
	if in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense {
		return ErrInvalidType
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if in.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
