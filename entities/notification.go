package entities

import (
	"github.com/google/uuid"
	"time"
)

type Notification struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipientID     uuid.UUID  `gorm:"type:uuid;index:idx_notifications_inbox,priority:1" json:"recipient_id"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	Type            string     `gorm:"default:system" json:"type"`
	Read            bool       `gorm:"default:false;index:idx_notifications_inbox,priority:2" json:"read"`
	Link            string     `json:"link,omitempty"`
	RelatedPickupID *uuid.UUID `gorm:"type:uuid" json:"related_pickup_id,omitempty"`
	CreatedAt       time.Time  `gorm:"index:idx_notifications_inbox,priority:3,sort:desc" json:"created_at"`
}
