package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AravindhAjit/my-wealth-atlas/models"
)

const owner = "user-1"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewService(store), store
}

func mustAccount(t *testing.T, svc *Service, initial string) models.Account {
	t.Helper()
	acc, err := svc.CreateAccount(owner, AccountInput{Name: "checking", Currency: "EUR", InitialBalance: dec(initial)})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	return acc
}

func input(accountID, txType, amount string) TransactionInput {
	return TransactionInput{
		AccountID: accountID,
		Type:      txType,
		Amount:    dec(amount),
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func balance(t *testing.T, store *MemoryStore, accountID string) decimal.Decimal {
	t.Helper()
	acc, ok := store.Account(accountID)
	if !ok {
		t.Fatalf("account %s missing", accountID)
	}
	return acc.CurrentBalance
}

func TestCreateAccountInitializesBalance(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "250.00")
	if got := balance(t, store, acc.ID); !got.Equal(dec("250.00")) {
		t.Errorf("current balance = %s, want 250.00", got)
	}
	if !acc.InitialBalance.Equal(acc.CurrentBalance) {
		t.Errorf("initial %s != current %s", acc.InitialBalance, acc.CurrentBalance)
	}
}

func TestCreateTransactionsAccumulate(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "0.00")

	steps := []struct {
		txType string
		amount string
		want   string
	}{
		{models.TransactionTypeIncome, "100.00", "100.00"},
		{models.TransactionTypeExpense, "40.50", "59.50"},
		{models.TransactionTypeIncome, "0.01", "59.51"},
		{models.TransactionTypeExpense, "100.00", "-40.49"},
	}
	for _, step := range steps {
		if _, err := svc.CreateTransaction(owner, input(acc.ID, step.txType, step.amount)); err != nil {
			t.Fatalf("CreateTransaction(%s %s) failed: %v", step.txType, step.amount, err)
		}
		if got := balance(t, store, acc.ID); !got.Equal(dec(step.want)) {
			t.Errorf("after %s %s: balance = %s, want %s", step.txType, step.amount, got, step.want)
		}
	}
}

func TestDeleteTransactionIsInverseOfCreate(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "100.00")

	tx, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeExpense, "33.33"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("66.67")) {
		t.Fatalf("after create: balance = %s, want 66.67", got)
	}

	if err := svc.DeleteTransaction(owner, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("100.00")) {
		t.Errorf("after delete: balance = %s, want 100.00", got)
	}
	if ts := store.Transactions(acc.ID); len(ts) != 0 {
		t.Errorf("transactions remaining = %d, want 0", len(ts))
	}
}

func TestUpdateAmountSameAccount(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "0.00")
	other := mustAccount(t, svc, "500.00")

	tx, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeIncome, "20.00"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if _, err := svc.UpdateTransaction(owner, tx.ID, input(acc.ID, models.TransactionTypeIncome, "75.00")); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("75.00")) {
		t.Errorf("balance = %s, want 75.00", got)
	}
	if got := balance(t, store, other.ID); !got.Equal(dec("500.00")) {
		t.Errorf("unrelated account balance = %s, want 500.00", got)
	}
}

func TestUpdateTypeFlipsContribution(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "0.00")

	tx, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeIncome, "10.00"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if _, err := svc.UpdateTransaction(owner, tx.ID, input(acc.ID, models.TransactionTypeExpense, "10.00")); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("-10.00")) {
		t.Errorf("balance = %s, want -10.00", got)
	}
}

func TestUpdateMovesTransactionBetweenAccounts(t *testing.T) {
	svc, store := newFixture(t)
	a := mustAccount(t, svc, "100.00")
	b := mustAccount(t, svc, "200.00")

	tx, err := svc.CreateTransaction(owner, input(a.ID, models.TransactionTypeIncome, "50.00"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	sumBefore := balance(t, store, a.ID).Add(balance(t, store, b.ID))

	if _, err := svc.UpdateTransaction(owner, tx.ID, input(b.ID, models.TransactionTypeIncome, "50.00")); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}

	if got := balance(t, store, a.ID); !got.Equal(dec("100.00")) {
		t.Errorf("source balance = %s, want 100.00", got)
	}
	if got := balance(t, store, b.ID); !got.Equal(dec("250.00")) {
		t.Errorf("target balance = %s, want 250.00", got)
	}
	sumAfter := balance(t, store, a.ID).Add(balance(t, store, b.ID))
	if !sumBefore.Equal(sumAfter) {
		t.Errorf("system-wide sum changed by move: %s -> %s", sumBefore, sumAfter)
	}
	if ts := store.Transactions(b.ID); len(ts) != 1 {
		t.Errorf("target account transactions = %d, want 1", len(ts))
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, store := newFixture(t)
	a := mustAccount(t, svc, "0.00")
	b := mustAccount(t, svc, "75.00")

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateTransaction(owner, input(a.ID, models.TransactionTypeIncome, "10.00")); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}
	if err := svc.DeleteAccount(owner, a.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if _, ok := store.Account(a.ID); ok {
		t.Error("account still present after delete")
	}
	if ts := store.Transactions(a.ID); len(ts) != 0 {
		t.Errorf("transactions remaining after cascade = %d, want 0", len(ts))
	}
	if got := balance(t, store, b.ID); !got.Equal(dec("75.00")) {
		t.Errorf("other account balance = %s, want 75.00", got)
	}
}

// Walks the full scenario: 100.00 start, +50 income, -30 expense, income
// raised to 80, expense removed.
func TestRunningBalanceScenario(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "100.00")

	t1, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeIncome, "50.00"))
	if err != nil {
		t.Fatalf("create t1: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("150.00")) {
		t.Fatalf("after t1: balance = %s, want 150.00", got)
	}

	t2, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeExpense, "30.00"))
	if err != nil {
		t.Fatalf("create t2: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("120.00")) {
		t.Fatalf("after t2: balance = %s, want 120.00", got)
	}

	if _, err := svc.UpdateTransaction(owner, t1.ID, input(acc.ID, models.TransactionTypeIncome, "80.00")); err != nil {
		t.Fatalf("update t1: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("150.00")) {
		t.Fatalf("after update: balance = %s, want 150.00", got)
	}

	if err := svc.DeleteTransaction(owner, t2.ID); err != nil {
		t.Fatalf("delete t2: %v", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("180.00")) {
		t.Fatalf("after delete: balance = %s, want 180.00", got)
	}

	// reads between mutations do not drift
	first := balance(t, store, acc.ID)
	for i := 0; i < 5; i++ {
		if got := balance(t, store, acc.ID); !got.Equal(first) {
			t.Fatalf("read %d drifted: %s != %s", i, got, first)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newFixture(t)
	acc := mustAccount(t, svc, "0.00")

	tests := []struct {
		name    string
		in      TransactionInput
		wantErr error
	}{
		{"unknown type", input(acc.ID, "transfer", "10.00"), ErrInvalidType},
		{"empty type", input(acc.ID, "", "10.00"), ErrInvalidType},
		{"zero amount", input(acc.ID, models.TransactionTypeIncome, "0.00"), ErrInvalidAmount},
		{"negative amount", input(acc.ID, models.TransactionTypeExpense, "-5.00"), ErrInvalidAmount},
		{"missing account", input("", models.TransactionTypeIncome, "10.00"), ErrMissingAccount},
		{"unknown account", input("nope", models.TransactionTypeIncome, "10.00"), ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(owner, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMissingDateRejected(t *testing.T) {
	svc, _ := newFixture(t)
	acc := mustAccount(t, svc, "0.00")
	in := TransactionInput{AccountID: acc.ID, Type: models.TransactionTypeIncome, Amount: dec("10.00")}
	if _, err := svc.CreateTransaction(owner, in); !errors.Is(err, ErrMissingDate) {
		t.Errorf("err = %v, want ErrMissingDate", err)
	}
}

func TestCategoryTypeMustMatch(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "0.00")
	store.AddCategory(models.Category{ID: "cat-salary", OwnerID: owner, Name: "Salary", Type: models.TransactionTypeIncome})

	in := input(acc.ID, models.TransactionTypeExpense, "10.00")
	catID := "cat-salary"
	in.CategoryID = &catID
	if _, err := svc.CreateTransaction(owner, in); !errors.Is(err, ErrCategoryTypeMismatch) {
		t.Errorf("err = %v, want ErrCategoryTypeMismatch", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("0.00")) {
		t.Errorf("balance moved on rejected create: %s", got)
	}

	in.Type = models.TransactionTypeIncome
	if _, err := svc.CreateTransaction(owner, in); err != nil {
		t.Errorf("matching category rejected: %v", err)
	}

	missing := "cat-missing"
	in.CategoryID = &missing
	if _, err := svc.CreateTransaction(owner, in); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestFailedUpdateLeavesEverythingUntouched(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "10.00")
	tx, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeIncome, "5.00"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	// move to an account that does not exist
	_, err = svc.UpdateTransaction(owner, tx.ID, input("missing", models.TransactionTypeIncome, "99.00"))
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("15.00")) {
		t.Errorf("balance = %s, want 15.00", got)
	}
	ts := store.Transactions(acc.ID)
	if len(ts) != 1 || !ts[0].Amount.Equal(dec("5.00")) {
		t.Errorf("transaction row changed by failed update: %+v", ts)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc, store := newFixture(t)
	acc := mustAccount(t, svc, "0.00")
	tx, err := svc.CreateTransaction(owner, input(acc.ID, models.TransactionTypeIncome, "10.00"))
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if _, err := svc.CreateTransaction("intruder", input(acc.ID, models.TransactionTypeIncome, "10.00")); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("foreign create err = %v, want ErrAccountNotFound", err)
	}
	if err := svc.DeleteTransaction("intruder", tx.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("foreign delete err = %v, want ErrTransactionNotFound", err)
	}
	if err := svc.DeleteAccount("intruder", acc.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("foreign account delete err = %v, want ErrAccountNotFound", err)
	}
	if got := balance(t, store, acc.ID); !got.Equal(dec("10.00")) {
		t.Errorf("balance = %s, want 10.00", got)
	}
}

func TestCreateAccountRequiresName(t *testing.T) {
	svc, _ := newFixture(t)
	if _, err := svc.CreateAccount(owner, AccountInput{}); !errors.Is(err, ErrMissingName) {
		t.Errorf("err = %v, want ErrMissingName", err)
	}
}
