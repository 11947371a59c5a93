package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string          `json:"ownerId" gorm:"column:owner_id;type:varchar(64);not null;index"`
	AccountID   string          `json:"accountId" gorm:"column:account_id;type:varchar(36);not null;index"`
	CategoryID  *string         `json:"categoryId" gorm:"column:category_id;type:varchar(36)"`
	Type        string          `json:"type" gorm:"type:varchar(16);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Date        time.Time       `json:"date" gorm:"type:date;not null"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type Alias Transaction
	aux := &struct {
		Date string `json:"date"`
		*Alias
	}{
		Alias: (*Alias)(t),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Date == "" {
		return nil
	}

	s := strings.TrimSpace(aux.Date)
	var parsed time.Time
	var err error

	parsed, err = time.Parse("2006-01-02", s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return errors.New("unsupported transaction date format")
	}

	// calendar date only, no time of day
	t.Date = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Date string `json:"date"`
	}{
		Alias: (Alias)(t),
		Date:  t.Date.Format("2006-01-02"),
	})
}
