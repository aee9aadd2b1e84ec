package user

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"context"
	"errors"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		CheckEmailExists(ctx context.Context, email string) (bool, error)
		UpdateProfile(ctx context.Context, user *entities.User) error

		ListUsers(ctx context.Context, filter domain.UserFilter) ([]*entities.User, int64, error)
		UpdateUser(ctx context.Context, user *entities.User, points *int) error
		DeleteUser(ctx context.Context, id string) error

		CountUsers(ctx context.Context, role string, since *time.Time) (int64, error)

		GetPointHistory(ctx context.Context, userID string, page, limit int) ([]*entities.PointTransaction, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile writes the identity columns only. Ledger columns are owned by
// LedgerRepository.
func (r *userRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"location":   user.Location,
			"password":   user.Password,
			"updated_at": time.Now(),
		}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ListUsers pages users newest first. Search matches name or email,
// case-insensitively.
func (r *userRepository) ListUsers(ctx context.Context, filter domain.UserFilter) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.User{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

// UpdateUser writes the identity columns and role. A non-nil points replaces
// the balance through the ledger in the same transaction, and user receives
// the resulting points and level.
func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User, points *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":       user.Name,
				"email":      user.Email,
				"phone":      user.Phone,
				"location":   user.Location,
				"role":       user.Role,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}

		if points == nil {
			return nil
		}
		updated, err := NewLedgerRepository(tx).SetPoints(ctx, user.ID.String(), *points, "Balance adjusted by administrator")
		if err != nil {
			return err
		}
		user.EcoPoints = updated.EcoPoints
		user.Level = updated.Level
		return nil
	})
}

// DeleteUser removes the user together with their pickups, point history and
// notifications.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.Pickup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.PointTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ?", id).Delete(&entities.Notification{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&entities.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) CountUsers(ctx context.Context, role string, since *time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) GetPointHistory(ctx context.Context, userID string, page, limit int) ([]*entities.PointTransaction, int64, error) {
	var transactions []*entities.PointTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.PointTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
