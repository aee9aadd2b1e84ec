package user

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/reward"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// LedgerRepository applies completion deltas to a user's cumulative totals.
	LedgerRepository interface {
		WithTx(tx *gorm.DB) LedgerRepository
		ApplyDelta(ctx context.Context, userID string, delta domain.LedgerDelta) (*entities.User, error)
		// SetPoints overwrites the point balance and records the difference as
		// an adjustment in the point history.
		SetPoints(ctx context.Context, userID string, points int, description string) (*entities.User, error)
	}

	ledgerRepository struct {
		db *gorm.DB
	}
)

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: tx}
}

// ApplyDelta locks the user row, adds the delta and records the reward in the
// point history. When r is bound to an outer transaction this runs as a
// savepoint inside it.
func (r *ledgerRepository) ApplyDelta(ctx context.Context, userID string, delta domain.LedgerDelta) (*entities.User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var user entities.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userUUID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		ApplyDelta(&user, delta)

		if err := tx.Model(&entities.User{}).
			Where("id = ?", userUUID).
			Updates(map[string]interface{}{
				"total_recycled": user.TotalRecycled,
				"carbon_offset":  user.CarbonOffset,
				"eco_points":     user.EcoPoints,
				"level":          user.Level,
				"updated_at":     time.Now(),
			}).Error; err != nil {
			return err
		}

		if delta.Points == 0 {
			return nil
		}

		transaction := &entities.PointTransaction{
			ID:          uuid.New(),
			UserID:      userUUID,
			Amount:      delta.Points,
			Type:        domain.PointTypeReward,
			Description: delta.Description,
			Balance:     user.EcoPoints,
		}
		if pickupID, err := uuid.Parse(delta.PickupID); err == nil {
			transaction.PickupID = &pickupID
		}
		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *ledgerRepository) SetPoints(ctx context.Context, userID string, points int, description string) (*entities.User, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var user entities.User
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userUUID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		diff := SetPoints(&user, points)

		if err := tx.Model(&entities.User{}).
			Where("id = ?", userUUID).
			Updates(map[string]interface{}{
				"eco_points": user.EcoPoints,
				"level":      user.Level,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		if diff == 0 {
			return nil
		}
		return tx.Create(&entities.PointTransaction{
			ID:          uuid.New(),
			UserID:      userUUID,
			Amount:      diff,
			Type:        domain.PointTypeAdjustment,
			Description: description,
			Balance:     user.EcoPoints,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ApplyDelta adds d to the user's totals and recomputes the level from points.
func ApplyDelta(u *entities.User, d domain.LedgerDelta) {
	u.TotalRecycled += d.Weight
	u.CarbonOffset += d.CarbonOffset
	u.EcoPoints += d.Points
	u.Level = reward.Level(u.EcoPoints)
}

// SetPoints replaces the balance, recomputes the level and returns the change.
func SetPoints(u *entities.User, points int) int {
	if points < 0 {
		points = 0
	}
	diff := points - u.EcoPoints
	u.EcoPoints = points
	u.Level = reward.Level(points)
	return diff
}
