package seed

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/user"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// SeedAdmin creates the administrator account unless one with the same
// email already exists. It reports whether an account was created.
func SeedAdmin(ctx context.Context, userRepository user.UserRepository, account AdminAccount) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(account.Email))
	if email == "" || account.Password == "" {
		return false, domain.NewValidationError("admin", "ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	existing, err := userRepository.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}
	if existing != nil {
		log.Infof("admin %s already exists, skipping", email)
		return false, nil
	}

	hashed, err := user.HashPassword(account.Password)
	if err != nil {
		return false, err
	}

	name := strings.TrimSpace(account.Name)
	if name == "" {
		name = "Admin"
	}

	admin := &entities.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     domain.RoleAdmin,
		Level:    1,
	}
	if err := userRepository.CreateUser(ctx, admin); err != nil {
		return false, err
	}

	log.Infof("admin %s created", email)
	return true, nil
}
