package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "user logged in successfully"
	MessageSuccessGetUser    = "user retrieved successfully"
	MessageSuccessUpdateUser = "profile updated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetUser    = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update profile"

	MessageSuccessGetUsers   = "users retrieved successfully"
	MessageSuccessAdminEdit  = "user updated successfully"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedGetUsers   = "failed to retrieve users"
	MessageFailedAdminEdit  = "failed to update user"
	MessageFailedDeleteUser = "failed to delete user"

	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("an account with this email already exists: %w", ErrConflict)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCannotDeleteSelf   = fmt.Errorf("cannot delete your own account: %w", ErrValidation)
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,min=2"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Name     *string `json:"name" validate:"omitempty,min=2"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Phone    *string `json:"phone" validate:"omitempty,max=32"`
		Location *string `json:"location" validate:"omitempty,max=255"`
		Password *string `json:"password" validate:"omitempty,min=6"`
	}

	// AdminUpdateUserRequest is the administrator edit. Level is always
	// derived from EcoPoints and cannot be set directly.
	AdminUpdateUserRequest struct {
		Name      *string `json:"name" validate:"omitempty,min=2"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Phone     *string `json:"phone" validate:"omitempty,max=32"`
		Location  *string `json:"location" validate:"omitempty,max=255"`
		Role      *string `json:"role" validate:"omitempty,oneof=user admin"`
		EcoPoints *int    `json:"eco_points" validate:"omitempty,gte=0,lte=1000000000"`
	}

	UserFilter struct {
		Search string
		Role   string
		Page   int
		Limit  int
	}

	AdminUserDetail struct {
		User    *User     `json:"user"`
		Pickups []*Pickup `json:"pickups"`
	}

	User struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		Phone         string    `json:"phone,omitempty"`
		Location      string    `json:"location,omitempty"`
		Role          string    `json:"role"`
		TotalRecycled float64   `json:"total_recycled"`
		CarbonOffset  float64   `json:"carbon_offset"`
		EcoPoints     int       `json:"eco_points"`
		Level         int       `json:"level"`
		CreatedAt     time.Time `json:"created_at"`
	}

	AuthResponse struct {
		User  *User  `json:"user"`
		Token string `json:"token"`
	}
)
