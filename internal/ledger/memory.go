package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

// MemoryStore is a map-backed Store. A unit of work runs against a copy of
// the data and the copy replaces the live maps only on success, so a failed
// unit leaves nothing behind. Used by tests and the local demo seeding.
type MemoryStore struct {
	mu           sync.Mutex
	accounts     map[string]models.Account
	categories   map[string]models.Category
	transactions map[string]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[string]models.Account),
		categories:   make(map[string]models.Category),
		transactions: make(map[string]models.Transaction),
	}
}

func (s *MemoryStore) InTx(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := &memoryTx{
		accounts:     make(map[string]models.Account, len(s.accounts)),
		categories:   make(map[string]models.Category, len(s.categories)),
		transactions: make(map[string]models.Transaction, len(s.transactions)),
	}
	for k, v := range s.accounts {
		scratch.accounts[k] = v
	}
	for k, v := range s.categories {
		scratch.categories[k] = v
	}
	for k, v := range s.transactions {
		scratch.transactions[k] = v
	}

	if err := fn(scratch); err != nil {
		return err
	}
	s.accounts = scratch.accounts
	s.categories = scratch.categories
	s.transactions = scratch.transactions
	return nil
}

// AddCategory installs a category outside any unit of work. Category CRUD
// is plain row maintenance and does not go through the ledger service.
func (s *MemoryStore) AddCategory(cat models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[cat.ID] = cat
}

// Account returns the live copy of an account, for assertions.
func (s *MemoryStore) Account(accountID string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	return acc, ok
}

// Transactions returns all live transactions for an account.
func (s *MemoryStore) Transactions(accountID string) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

type memoryTx struct {
	accounts     map[string]models.Account
	categories   map[string]models.Category
	transactions map[string]models.Transaction
}

func (m *memoryTx) GetAccount(ownerID, accountID string) (models.Account, error) {
	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return models.Account{}, ErrAccountNotFound
	}
	return acc, nil
}

func (m *memoryTx) InsertAccount(acc models.Account) error {
	m.accounts[acc.ID] = acc
	return nil
}

func (m *memoryTx) DeleteAccount(ownerID, accountID string) error {
	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return ErrAccountNotFound
	}
	delete(m.accounts, accountID)
	for id, t := range m.transactions {
		if t.AccountID == accountID {
			delete(m.transactions, id)
		}
	}
	return nil
}

func (m *memoryTx) GetCategory(ownerID, categoryID string) (models.Category, error) {
	cat, ok := m.categories[categoryID]
	if !ok || cat.OwnerID != ownerID {
		return models.Category{}, ErrCategoryNotFound
	}
	return cat, nil
}

func (m *memoryTx) InsertTransaction(t models.Transaction) error {
	m.transactions[t.ID] = t
	return nil
}

func (m *memoryTx) GetTransactionForUpdate(ownerID, txID string) (models.Transaction, error) {
	t, ok := m.transactions[txID]
	if !ok || t.OwnerID != ownerID {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

func (m *memoryTx) UpdateTransaction(t models.Transaction) error {
	if _, ok := m.transactions[t.ID]; !ok {
		return ErrTransactionNotFound
	}
	m.transactions[t.ID] = t
	return nil
}

func (m *memoryTx) DeleteTransaction(ownerID, txID string) error {
	t, ok := m.transactions[txID]
	if !ok || t.OwnerID != ownerID {
		return ErrTransactionNotFound
	}
	delete(m.transactions, txID)
	return nil
}

func (m *memoryTx) AdjustBalance(accountID string, delta decimal.Decimal) error {
	acc, ok := m.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	acc.CurrentBalance = acc.CurrentBalance.Add(delta)
	m.accounts[accountID] = acc
	return nil
}
