package entities

import (
	"github.com/google/uuid"
	"time"
)

type Pickup struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	PickupCode      string     `gorm:"uniqueIndex" json:"pickup_code"` // #ECO-2024-003
	UserID          uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	WasteType       string     `gorm:"index" json:"waste_type"` // recyclable, organic, ewaste, hazardous
	ScheduledDate   time.Time  `json:"scheduled_date"`
	TimeSlot        string     `json:"time_slot"`
	Address         string     `json:"address"`
	EstimatedWeight float64    `json:"estimated_weight"`
	ActualWeight    float64    `json:"actual_weight"`
	Notes           string     `json:"notes"`
	AdminNotes      string     `json:"admin_notes"`
	Status          string     `gorm:"index" json:"status"` // pending, scheduled, in-progress, completed, cancelled
	EcoPointsEarned int        `json:"eco_points_earned"`
	ImageURL        string     `json:"image_url,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
