package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

// Service is the only writer of account balances. Each method runs the
// record write and the balance adjustment in a single unit of work.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateAccount(ownerID string, in AccountInput) (models.Account, error) {
	if in.Name == "" {
		return models.Account{}, ErrMissingName
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	acc := models.Account{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           in.Name,
		Description:    in.Description,
		Currency:       currency,
		InitialBalance: in.InitialBalance,
		CurrentBalance: in.InitialBalance,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	err := s.store.InTx(func(tx Tx) error {
		return tx.InsertAccount(acc)
	})
	if err != nil {
		return models.Account{}, fmt.Errorf("CreateAccount: %w", err)
	}
	return acc, nil
}

// DeleteAccount removes the account and all of its transactions. Their
// balance contributions vanish with the account, so no adjustment is made
// anywhere else.
func (s *Service) DeleteAccount(ownerID, accountID string) error {
	err := s.store.InTx(func(tx Tx) error {
		return tx.DeleteAccount(ownerID, accountID)
	})
	if err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}
	return nil
}

func (s *Service) CreateTransaction(ownerID string, in TransactionInput) (models.Transaction, error) {
	if err := validateInput(in); err != nil {
		return models.Transaction{}, err
	}
	t := models.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	err := s.store.InTx(func(tx Tx) error {
		if _, err := tx.GetAccount(ownerID, in.AccountID); err != nil {
			return err
		}
		if err := checkCategory(tx, ownerID, in); err != nil {
			return err
		}
		if err := tx.InsertTransaction(t); err != nil {
			return err
		}
		return tx.AdjustBalance(in.AccountID, signed(in.Type, in.Amount))
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("CreateTransaction: %w", err)
	}
	return t, nil
}

// UpdateTransaction replaces the transaction's state. The old signed
// contribution is reverted and the new one applied: a net adjustment when
// the account is unchanged, one revert plus one apply when the transaction
// moves between accounts. The locked read serializes racing updates and
// deletes of the same row; the loser sees it gone.
func (s *Service) UpdateTransaction(ownerID, txID string, in TransactionInput) (models.Transaction, error) {
	if err := validateInput(in); err != nil {
		return models.Transaction{}, err
	}
	var updated models.Transaction
	err := s.store.InTx(func(tx Tx) error {
		old, err := tx.GetTransactionForUpdate(ownerID, txID)
		if err != nil {
			return err
		}
		if _, err := tx.GetAccount(ownerID, in.AccountID); err != nil {
			return err
		}
		if err := checkCategory(tx, ownerID, in); err != nil {
			return err
		}

		updated = old
		updated.AccountID = in.AccountID
		updated.CategoryID = in.CategoryID
		updated.Type = in.Type
		updated.Amount = in.Amount
		updated.Description = in.Description
		updated.Date = in.Date
		updated.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateTransaction(updated); err != nil {
			return err
		}

		oldContribution := signed(old.Type, old.Amount)
		newContribution := signed(in.Type, in.Amount)
		if old.AccountID == in.AccountID {
			delta := newContribution.Sub(oldContribution)
			if delta.IsZero() {
				return nil
			}
			return tx.AdjustBalance(in.AccountID, delta)
		}
		if err := tx.AdjustBalance(old.AccountID, oldContribution.Neg()); err != nil {
			return err
		}
		return tx.AdjustBalance(in.AccountID, newContribution)
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
	}
	return updated, nil
}

func (s *Service) DeleteTransaction(ownerID, txID string) error {
	err := s.store.InTx(func(tx Tx) error {
		old, err := tx.GetTransactionForUpdate(ownerID, txID)
		if err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ownerID, txID); err != nil {
			return err
		}
		return tx.AdjustBalance(old.AccountID, signed(old.Type, old.Amount).Neg())
	})
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	return nil
}

// checkCategory verifies the referenced category exists for the owner and
// carries the same type tag as the transaction.
func checkCategory(tx Tx, ownerID string, in TransactionInput) error {
	if in.CategoryID == nil {
		return nil
	}
	cat, err := tx.GetCategory(ownerID, *in.CategoryID)
	if err != nil {
		return err
	}
	if cat.Type != in.Type {
		return ErrCategoryTypeMismatch
	}
	return nil
}
