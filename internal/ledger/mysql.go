package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

// mysqlStore implements Store on MySQL. Balance increments rely on the
// row lock the engine takes for UPDATE, and transaction rows are read with
// FOR UPDATE so racing mutations of the same row serialize.
type mysqlStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) Store {
	return &mysqlStore{db: db}
}

func (s *mysqlStore) InTx(fn func(Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("InTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&mysqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("InTx: commit: %w", err)
	}
	return nil
}

type mysqlTx struct {
	tx *sql.Tx
}

func (m *mysqlTx) GetAccount(ownerID, accountID string) (models.Account, error) {
	var acc models.Account
	query := `SELECT id, owner_id, name, description, currency, initial_balance, current_balance FROM accounts WHERE id = ? AND owner_id = ?`
	row := m.tx.QueryRow(query, accountID, ownerID)
	err := row.Scan(&acc.ID, &acc.OwnerID, &acc.Name, &acc.Description, &acc.Currency, &acc.InitialBalance, &acc.CurrentBalance)
	if err != nil {
		if err == sql.ErrNoRows {
			return acc, ErrAccountNotFound
		}
		return acc, fmt.Errorf("GetAccount: %w", err)
	}
	return acc, nil
}

func (m *mysqlTx) InsertAccount(acc models.Account) error {
	query := `INSERT INTO accounts (id, owner_id, name, description, currency, initial_balance, current_balance, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := m.tx.Exec(query, acc.ID, acc.OwnerID, acc.Name, acc.Description, acc.Currency, acc.InitialBalance, acc.CurrentBalance, acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("InsertAccount: %w", err)
	}
	return nil
}

func (m *mysqlTx) DeleteAccount(ownerID, accountID string) error {
	// transactions go with the account via ON DELETE CASCADE
	res, err := m.tx.Exec(`DELETE FROM accounts WHERE id = ? AND owner_id = ?`, accountID, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteAccount: RowsAffected failed: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (m *mysqlTx) GetCategory(ownerID, categoryID string) (models.Category, error) {
	var cat models.Category
	query := `SELECT id, owner_id, name, color, type FROM categories WHERE id = ? AND owner_id = ?`
	row := m.tx.QueryRow(query, categoryID, ownerID)
	err := row.Scan(&cat.ID, &cat.OwnerID, &cat.Name, &cat.Color, &cat.Type)
	if err != nil {
		if err == sql.ErrNoRows {
			return cat, ErrCategoryNotFound
		}
		return cat, fmt.Errorf("GetCategory: %w", err)
	}
	return cat, nil
}

func (m *mysqlTx) InsertTransaction(t models.Transaction) error {
	query := `INSERT INTO transactions (id, owner_id, account_id, category_id, type, amount, description, date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := m.tx.Exec(query, t.ID, t.OwnerID, t.AccountID, nullable(t.CategoryID), t.Type, t.Amount, t.Description, t.Date.Format("2006-01-02"), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("InsertTransaction: %w", err)
	}
	return nil
}

func (m *mysqlTx) GetTransactionForUpdate(ownerID, txID string) (models.Transaction, error) {
	var t models.Transaction
	var categoryID sql.NullString
	query := `SELECT id, owner_id, account_id, category_id, type, amount, description, date, created_at, updated_at FROM transactions WHERE id = ? AND owner_id = ? FOR UPDATE`
	row := m.tx.QueryRow(query, txID, ownerID)
	err := row.Scan(&t.ID, &t.OwnerID, &t.AccountID, &categoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, ErrTransactionNotFound
		}
		return t, fmt.Errorf("GetTransactionForUpdate: %w", err)
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	return t, nil
}

func (m *mysqlTx) UpdateTransaction(t models.Transaction) error {
	query := `UPDATE transactions SET account_id = ?, category_id = ?, type = ?, amount = ?, description = ?, date = ?, updated_at = ? WHERE id = ? AND owner_id = ?`
	_, err := m.tx.Exec(query, t.AccountID, nullable(t.CategoryID), t.Type, t.Amount, t.Description, t.Date.Format("2006-01-02"), t.UpdatedAt, t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("UpdateTransaction: %w", err)
	}
	return nil
}

func (m *mysqlTx) DeleteTransaction(ownerID, txID string) error {
	res, err := m.tx.Exec(`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, txID, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteTransaction: RowsAffected failed: %w", err)
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (m *mysqlTx) AdjustBalance(accountID string, delta decimal.Decimal) error {
	res, err := m.tx.Exec(`UPDATE accounts SET current_balance = current_balance + ? WHERE id = ?`, delta, accountID)
	if err != nil {
		return fmt.Errorf("AdjustBalance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("AdjustBalance: RowsAffected failed: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
