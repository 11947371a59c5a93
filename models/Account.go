package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrentBalance is maintained by the ledger service only. It is never
// accepted from request payloads and never part of an account update.
type Account struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID        string          `json:"ownerId" gorm:"column:owner_id;type:varchar(64);not null;index"`
	Name           string          `json:"name" gorm:"type:varchar(255);not null"`
	Description    string          `json:"description" gorm:"type:text"`
	Currency       string          `json:"currency" gorm:"type:varchar(8);not null;default:'USD'"`
	InitialBalance decimal.Decimal `json:"initialBalance" gorm:"type:decimal(14,2);not null"`
	CurrentBalance decimal.Decimal `json:"currentBalance" gorm:"type:decimal(14,2);not null"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
