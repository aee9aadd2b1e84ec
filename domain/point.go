package domain

import (
	"time"
)

var (
	MessageSuccessGetPointHistory = "eco point history retrieved successfully"
	MessageFailedGetPointHistory  = "failed to retrieve eco point history"
)

const (
	PointTypeReward     = "Reward"
	PointTypeAdjustment = "Adjustment"
)

type (
	// LedgerDelta is what a single completion adds to the owner's totals.
	LedgerDelta struct {
		Weight       float64
		CarbonOffset float64
		Points       int
		PickupID     string
		Description  string
	}

	PointTransaction struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		PickupID    string    `json:"pickup_id,omitempty"`
		Amount      int       `json:"amount"`
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Balance     int       `json:"balance"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
