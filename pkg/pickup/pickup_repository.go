package pickup

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const codeAttempts = 3

type (
	PickupRepository interface {
		CreatePickup(ctx context.Context, pickup *entities.Pickup) error
		GetPickupByID(ctx context.Context, id string) (*entities.Pickup, error)
		GetPickups(ctx context.Context, filter domain.PickupFilter) ([]*entities.Pickup, int64, error)
		// SavePickup writes the mutable columns only if the stored status still
		// equals expectedStatus, and applies delta to the owner's ledger in the
		// same transaction. A lost race returns domain.ErrPickupConflict.
		SavePickup(ctx context.Context, pickup *entities.Pickup, expectedStatus string, delta *domain.LedgerDelta) error
		DeletePickup(ctx context.Context, id string) error

		GetRecentPickups(ctx context.Context, userID string, limit int) ([]*entities.Pickup, error)
		GetNextPickup(ctx context.Context, userID string, from time.Time) (*entities.Pickup, error)
		SumCompletedWeight(ctx context.Context, userID string, from, to time.Time) (float64, error)
		CountByStatus(ctx context.Context) (map[string]int64, error)
		GetWasteTypeStats(ctx context.Context) ([]*domain.WasteTypeStat, error)
		GetCompletedTotals(ctx context.Context) (float64, int64, error)
	}

	pickupRepository struct {
		db     *gorm.DB
		ledger user.LedgerRepository
	}
)

func NewPickupRepository(db *gorm.DB, ledger user.LedgerRepository) PickupRepository {
	return &pickupRepository{
		db:     db,
		ledger: ledger,
	}
}

// CreatePickup assigns the next code of the creation year. A concurrent insert
// holding the same code is retried with the next ordinal.
func (r *pickupRepository) CreatePickup(ctx context.Context, pickup *entities.Pickup) error {
	start, end := yearBounds(pickup.CreatedAt)

	var err error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&entities.Pickup{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&count).Error; err != nil {
			return err
		}

		pickup.PickupCode = FormatPickupCode(start.Year(), int(count)+1+attempt)
		err = r.db.WithContext(ctx).Create(pickup).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}

	return fmt.Errorf("failed to allocate pickup code: %w", err)
}

func (r *pickupRepository) GetPickupByID(ctx context.Context, id string) (*entities.Pickup, error) {
	var pickup entities.Pickup
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&pickup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupNotFound
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) GetPickups(ctx context.Context, filter domain.PickupFilter) ([]*entities.Pickup, int64, error) {
	var pickups []*entities.Pickup
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Pickup{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WasteType != "" {
		query = query.Where("waste_type = ?", filter.WasteType)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&pickups).Error; err != nil {
		return nil, 0, err
	}

	return pickups, count, nil
}

func (r *pickupRepository) SavePickup(ctx context.Context, pickup *entities.Pickup, expectedStatus string, delta *domain.LedgerDelta) error {
	now := time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Pickup{}).
			Where("id = ? AND status = ?", pickup.ID, expectedStatus).
			Updates(map[string]interface{}{
				"waste_type":        pickup.WasteType,
				"scheduled_date":    pickup.ScheduledDate,
				"time_slot":         pickup.TimeSlot,
				"address":           pickup.Address,
				"estimated_weight":  pickup.EstimatedWeight,
				"actual_weight":     pickup.ActualWeight,
				"notes":             pickup.Notes,
				"admin_notes":       pickup.AdminNotes,
				"status":            pickup.Status,
				"eco_points_earned": pickup.EcoPointsEarned,
				"completed_at":      pickup.CompletedAt,
				"updated_at":        now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrPickupConflict
		}

		if delta == nil {
			return nil
		}
		_, err := r.ledger.WithTx(tx).ApplyDelta(ctx, pickup.UserID.String(), *delta)
		return err
	})
	if err != nil {
		return err
	}

	pickup.UpdatedAt = now
	return nil
}

func (r *pickupRepository) DeletePickup(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Pickup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrPickupNotFound
	}
	return nil
}

// GetRecentPickups returns the newest pickups, across all users when userID is empty.
func (r *pickupRepository) GetRecentPickups(ctx context.Context, userID string, limit int) ([]*entities.Pickup, error) {
	var pickups []*entities.Pickup
	query := r.db.WithContext(ctx).Preload("User")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&pickups).Error; err != nil {
		return nil, err
	}
	return pickups, nil
}

// GetNextPickup returns nil when the user has nothing open on or after from.
func (r *pickupRepository) GetNextPickup(ctx context.Context, userID string, from time.Time) (*entities.Pickup, error) {
	var pickup entities.Pickup
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ? AND scheduled_date >= ?", userID,
			[]string{domain.StatusPending.String(), domain.StatusScheduled.String()}, from).
		Order("scheduled_date ASC").
		First(&pickup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) SumCompletedWeight(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	var result struct {
		Total float64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Select("COALESCE(SUM(actual_weight), 0) as total").
		Where("user_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
			userID, domain.StatusCompleted.String(), from, to).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

func (r *pickupRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *pickupRepository) GetWasteTypeStats(ctx context.Context) ([]*domain.WasteTypeStat, error) {
	var stats []*domain.WasteTypeStat
	if err := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Select("waste_type, COUNT(*) as count, COALESCE(SUM(actual_weight), 0) as total_weight").
		Group("waste_type").
		Order("waste_type ASC").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *pickupRepository) GetCompletedTotals(ctx context.Context) (float64, int64, error) {
	var result struct {
		TotalWeight float64
		TotalPoints int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Select("COALESCE(SUM(actual_weight), 0) as total_weight, COALESCE(SUM(eco_points_earned), 0) as total_points").
		Where("status = ?", domain.StatusCompleted.String()).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.TotalWeight, result.TotalPoints, nil
}
