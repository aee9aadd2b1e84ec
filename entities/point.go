package entities

import (
	"github.com/google/uuid"
)

// PointTransaction is one line of a user's eco point history. The aggregate
// lives on User; this table only explains how it got there.
type PointTransaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	PickupID    *uuid.UUID `gorm:"type:uuid" json:"pickup_id,omitempty"`
	Amount      int        `json:"amount"`
	Type        string     `json:"type"` // Reward
	Description string     `json:"description"`
	Balance     int        `json:"balance"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
