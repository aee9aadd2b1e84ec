package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `json:"name"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Phone    string    `json:"phone,omitempty"`
	Location string    `json:"location,omitempty"`
	Role     string    `gorm:"default:user" json:"role"`

	// Ledger, mutated only by pickup completion.
	TotalRecycled float64 `gorm:"default:0" json:"total_recycled"`
	CarbonOffset  float64 `gorm:"default:0" json:"carbon_offset"`
	EcoPoints     int     `gorm:"default:0" json:"eco_points"`
	Level         int     `gorm:"default:1" json:"level"`

	Pickups []*Pickup `gorm:"foreignKey:UserID"`
	Timestamp
}
