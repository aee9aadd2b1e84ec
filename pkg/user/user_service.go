package user

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (*domain.User, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (*domain.AuthResponse, error)
		GetPointHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PointTransaction, int64, error)

		ListUsers(ctx context.Context, filter domain.UserFilter, actor domain.Actor) ([]*domain.User, int64, error)
		GetUser(ctx context.Context, id string, actor domain.Actor) (*domain.User, error)
		AdminUpdateUser(ctx context.Context, id string, req domain.AdminUpdateUserRequest, actor domain.Actor) (*domain.User, error)
		DeleteUser(ctx context.Context, id string, actor domain.Actor) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hashed,
		Role:     domain.RoleUser,
		Level:    1,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:  ToUserDomain(user),
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.AuthResponse{
		User:  ToUserDomain(user),
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserDomain(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && email != user.Email {
			exists, err := s.userRepository.CheckEmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepository.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:  ToUserDomain(user),
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
	}, nil
}

func (s *userService) GetPointHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PointTransaction, int64, error) {
	transactions, count, err := s.userRepository.GetPointHistory(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.PointTransaction, 0, len(transactions))
	for _, tx := range transactions {
		item := &domain.PointTransaction{
			ID:          tx.ID.String(),
			UserID:      tx.UserID.String(),
			Amount:      tx.Amount,
			Type:        tx.Type,
			Description: tx.Description,
			Balance:     tx.Balance,
			CreatedAt:   tx.CreatedAt,
		}
		if tx.PickupID != nil {
			item.PickupID = tx.PickupID.String()
		}
		result = append(result, item)
	}

	return result, count, nil
}

func (s *userService) ListUsers(ctx context.Context, filter domain.UserFilter, actor domain.Actor) ([]*domain.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, domain.ErrUserNotAllowed
	}
	if filter.Role != "" && filter.Role != domain.RoleUser && filter.Role != domain.RoleAdmin {
		return nil, 0, domain.NewValidationError("role", "must be user or admin")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	users, count, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.User, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDomain(u))
	}
	return result, count, nil
}

func (s *userService) GetUser(ctx context.Context, id string, actor domain.Actor) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserDomain(u), nil
}

// AdminUpdateUser edits another account. A points edit goes through the
// ledger so the level and point history stay consistent.
func (s *userService) AdminUpdateUser(ctx context.Context, id string, req domain.AdminUpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && email != u.Email {
			exists, err := s.userRepository.CheckEmailExists(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrEmailAlreadyExists
			}
			u.Email = email
		}
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Role != nil {
		if *req.Role != domain.RoleUser && *req.Role != domain.RoleAdmin {
			return nil, domain.NewValidationError("role", "must be user or admin")
		}
		u.Role = *req.Role
	}

	var points *int
	if req.EcoPoints != nil {
		if *req.EcoPoints < 0 {
			return nil, domain.NewValidationError("eco_points", "must be zero or greater")
		}
		if *req.EcoPoints != u.EcoPoints {
			points = req.EcoPoints
		}
	}

	if err := s.userRepository.UpdateUser(ctx, u, points); err != nil {
		return nil, err
	}
	return ToUserDomain(u), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrUserNotAllowed
	}
	if id == actor.UserID {
		return domain.ErrCannotDeleteSelf
	}
	if _, err := s.getUser(ctx, id); err != nil {
		return err
	}
	return s.userRepository.DeleteUser(ctx, id)
}

func (s *userService) getUser(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.userRepository.GetUserByID(ctx, id)
}

func ToUserDomain(u *entities.User) *domain.User {
	return &domain.User{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Location:      u.Location,
		Role:          u.Role,
		TotalRecycled: u.TotalRecycled,
		CarbonOffset:  u.CarbonOffset,
		EcoPoints:     u.EcoPoints,
		Level:         u.Level,
		CreatedAt:     u.CreatedAt,
	}
}
