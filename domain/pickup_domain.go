package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreatePickup   = "pickup created successfully"
	MessageSuccessGetPickups     = "pickups retrieved successfully"
	MessageSuccessUpdatePickup   = "pickup updated successfully"
	MessageSuccessCompletePickup = "pickup completed successfully"
	MessageSuccessCancelPickup   = "pickup cancelled"
	MessageSuccessDeletePickup   = "pickup deleted successfully"
	MessageSuccessGetPickupStats = "pickup statistics retrieved successfully"

	MessageFailedCreatePickup   = "failed to create pickup"
	MessageFailedGetPickups     = "failed to retrieve pickups"
	MessageFailedUpdatePickup   = "failed to update pickup"
	MessageFailedCompletePickup = "failed to complete pickup"
	MessageFailedCancelPickup   = "failed to cancel pickup"
	MessageFailedDeletePickup   = "failed to delete pickup"
	MessageFailedGetPickupStats = "failed to retrieve pickup statistics"

	ErrInvalidTransition = errors.New("invalid pickup status transition")

	ErrPickupNotFound           = fmt.Errorf("pickup not found: %w", ErrNotFound)
	ErrUnauthorizedPickupAccess = fmt.Errorf("unauthorized access to pickup: %w", ErrForbidden)
	ErrPickupConflict           = fmt.Errorf("pickup status changed by another request: %w", ErrConflict)
	ErrPickupLocked             = fmt.Errorf("pickup can no longer be modified: %w", ErrInvalidTransition)
	ErrInvalidPickupStatus      = NewValidationError("status", "unknown pickup status")
	ErrInvalidWasteType         = NewValidationError("waste_type", "must be one of recyclable, organic, ewaste, hazardous")
	ErrInvalidWeight            = NewValidationError("weight", "must be between 0 and 10000 kg")
	ErrInvalidScheduledDate     = NewValidationError("scheduled_date", "must be a date in YYYY-MM-DD format")
)

const (
	WasteRecyclable = "recyclable"
	WasteOrganic    = "organic"
	WasteEWaste     = "ewaste"
	WasteHazardous  = "hazardous"

	// MaxWeight bounds every estimated or measured weight, in kg.
	MaxWeight = 10000

	PickupCodePrefix = "#ECO"
	DateLayout       = "2006-01-02"
)

var WasteTypes = []string{WasteRecyclable, WasteOrganic, WasteEWaste, WasteHazardous}

func IsWasteType(t string) bool {
	for _, w := range WasteTypes {
		if w == t {
			return true
		}
	}
	return false
}

// ValidWeight reports whether w is a usable weight in kg.
func ValidWeight(w float64) bool {
	return w >= 0 && w <= MaxWeight
}

// WasteTypeLabel is the display name used in user-facing messages.
func WasteTypeLabel(t string) string {
	switch t {
	case WasteRecyclable:
		return "Recyclable"
	case WasteOrganic:
		return "Organic"
	case WasteEWaste:
		return "E-Waste"
	case WasteHazardous:
		return "Hazardous"
	default:
		return t
	}
}

type (
	PickupRequest struct {
		WasteType       string                `json:"waste_type" form:"waste_type" validate:"required,waste_type"`
		ScheduledDate   string                `json:"scheduled_date" form:"scheduled_date" validate:"required,datetime=2006-01-02"`
		TimeSlot        string                `json:"time_slot" form:"time_slot" validate:"required"`
		Address         string                `json:"address" form:"address" validate:"required,min=3"`
		EstimatedWeight float64               `json:"estimated_weight" form:"estimated_weight" validate:"gte=0,lte=10000"`
		Notes           string                `json:"notes" form:"notes" validate:"omitempty,max=1000"`
		Image           *multipart.FileHeader `json:"-" form:"image"`
	}

	// UpdatePickupRequest is the owner edit. Nil fields are left untouched.
	UpdatePickupRequest struct {
		WasteType       *string  `json:"waste_type" validate:"omitempty,waste_type"`
		ScheduledDate   *string  `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
		TimeSlot        *string  `json:"time_slot" validate:"omitempty,min=1"`
		Address         *string  `json:"address" validate:"omitempty,min=3"`
		EstimatedWeight *float64 `json:"estimated_weight" validate:"omitempty,gte=0,lte=10000"`
		Notes           *string  `json:"notes" validate:"omitempty,max=1000"`
		Status          *string  `json:"status" validate:"omitempty,oneof=pending scheduled completed cancelled"`
		ActualWeight    *float64 `json:"actual_weight" validate:"omitempty,gte=0,lte=10000"`
	}

	CompletePickupRequest struct {
		ActualWeight *float64 `json:"actual_weight" validate:"omitempty,gte=0,lte=10000"`
	}

	AdminUpdatePickupRequest struct {
		Status       *string  `json:"status" validate:"omitempty,oneof=pending scheduled in-progress completed cancelled"`
		AdminNotes   *string  `json:"admin_notes" validate:"omitempty,max=1000"`
		ActualWeight *float64 `json:"actual_weight" validate:"omitempty,gte=0,lte=10000"`
	}

	PickupFilter struct {
		UserID    string
		Status    string
		WasteType string
		Page      int
		Limit     int
	}

	Pickup struct {
		ID              string     `json:"id"`
		PickupCode      string     `json:"pickup_code"`
		UserID          string     `json:"user_id"`
		UserName        string     `json:"user_name,omitempty"`
		UserEmail       string     `json:"user_email,omitempty"`
		WasteType       string     `json:"waste_type"`
		ScheduledDate   time.Time  `json:"scheduled_date"`
		TimeSlot        string     `json:"time_slot"`
		Address         string     `json:"address"`
		EstimatedWeight float64    `json:"estimated_weight"`
		ActualWeight    float64    `json:"actual_weight"`
		Notes           string     `json:"notes"`
		AdminNotes      string     `json:"admin_notes"`
		Status          string     `json:"status"`
		EcoPointsEarned int        `json:"eco_points_earned"`
		ImageURL        string     `json:"image_url,omitempty"`
		CreatedAt       time.Time  `json:"created_at"`
		UpdatedAt       time.Time  `json:"updated_at"`
		CompletedAt     *time.Time `json:"completed_at,omitempty"`
	}

	// PickupStatusEvent is emitted after a status change has been committed.
	PickupStatusEvent struct {
		Pickup         Pickup
		PreviousStatus PickupStatus
		NewStatus      PickupStatus
		AdminNote      string
	}

	RecentPickup struct {
		Type   string    `json:"type"`
		Date   time.Time `json:"date"`
		Status string    `json:"status"`
	}

	NextPickup struct {
		Date time.Time `json:"date"`
		Time string    `json:"time"`
		Type string    `json:"type"`
	}

	UserPickupStats struct {
		TotalRecycled float64         `json:"total_recycled"`
		CarbonOffset  float64         `json:"carbon_offset"`
		EcoPoints     int             `json:"eco_points"`
		Level         int             `json:"level"`
		RecycledTrend string          `json:"recycled_trend"`
		RecentPickups []*RecentPickup `json:"recent_pickups"`
		NextPickup    *NextPickup     `json:"next_pickup"`
	}

	WasteTypeStat struct {
		WasteType   string  `json:"waste_type"`
		Count       int64   `json:"count"`
		TotalWeight float64 `json:"total_weight"`
	}

	AdminPickupCounts struct {
		Total      int64            `json:"total"`
		Pending    int64            `json:"pending"`
		InProgress int64            `json:"in_progress"`
		Completed  int64            `json:"completed"`
		Cancelled  int64            `json:"cancelled"`
		ByType     []*WasteTypeStat `json:"by_type"`
	}

	AdminTotals struct {
		WasteRecycled    float64 `json:"waste_recycled"`
		EcoPointsAwarded int64   `json:"eco_points_awarded"`
		CarbonOffset     float64 `json:"carbon_offset"`
	}

	AdminUserCounts struct {
		Total        int64 `json:"total"`
		NewThisMonth int64 `json:"new_this_month"`
	}

	AdminStats struct {
		Users         AdminUserCounts   `json:"users"`
		Pickups       AdminPickupCounts `json:"pickups"`
		Totals        AdminTotals       `json:"totals"`
		RecentPickups []*Pickup         `json:"recent_pickups"`
	}
)
