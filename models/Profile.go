package models

import "time"

// Profile rows share their primary key with the external identity provider's
// user id. A row is provisioned on the first authenticated request.
type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	DisplayName string    `json:"displayName" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
