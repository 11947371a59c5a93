package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

// Store opens atomic units of work. Either every write inside fn is
// persisted or none of them is.
type Store interface {
	InTx(fn func(Tx) error) error
}

// Tx is the set of operations available inside a unit of work. All lookups
// are owner-scoped; a row belonging to another owner behaves as missing.
type Tx interface {
	// GetAccount returns ErrAccountNotFound when the account does not
	// exist for the owner.
	GetAccount(ownerID, accountID string) (models.Account, error)
	InsertAccount(acc models.Account) error
	// DeleteAccount removes the account and every transaction that
	// references it. Returns ErrAccountNotFound when nothing was deleted.
	DeleteAccount(ownerID, accountID string) error

	// GetCategory returns ErrCategoryNotFound when the category does not
	// exist for the owner.
	GetCategory(ownerID, categoryID string) (models.Category, error)

	InsertTransaction(t models.Transaction) error
	// GetTransactionForUpdate reads the row and locks it against
	// concurrent mutation until the unit of work ends. Returns
	// ErrTransactionNotFound when missing.
	GetTransactionForUpdate(ownerID, txID string) (models.Transaction, error)
	UpdateTransaction(t models.Transaction) error
	DeleteTransaction(ownerID, txID string) error

	// AdjustBalance applies an atomic read-modify-write increment of
	// delta to the account's current balance.
	AdjustBalance(accountID string, delta decimal.Decimal) error
}
