package models

import "time"

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   string    `json:"ownerId" gorm:"column:owner_id;type:varchar(64);not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Color     string    `json:"color" gorm:"type:varchar(16)"`
	Type      string    `json:"type" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
