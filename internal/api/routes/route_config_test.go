package routes

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/internal/api/handlers"
	"EcoSync-Backend/internal/api/presenters"
	"EcoSync-Backend/internal/middleware"
	"EcoSync-Backend/internal/utils"
	"EcoSync-Backend/pkg/notification"
	"EcoSync-Backend/pkg/pickup"
	"EcoSync-Backend/pkg/user"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct{}

func (fakeJWT) GenerateTokenUser(userId string, role string) string { return "token-" + userId }

func (fakeJWT) ValidateTokenUser(token string) (*gojwt.Token, error) { return nil, nil }

func (fakeJWT) GetUserIDByToken(token string) (string, string, error) {
	switch token {
	case "user-token":
		return "u1", domain.RoleUser, nil
	case "admin-token":
		return "a1", domain.RoleAdmin, nil
	}
	return "", "", domain.ErrTokenInvalid
}

type fakeUserService struct {
	user.UserService
	registered []domain.RegisterRequest
	adminEdits []domain.AdminUpdateUserRequest
	deleted    []string
}

func (f *fakeUserService) Register(_ context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	f.registered = append(f.registered, req)
	return &domain.AuthResponse{User: &domain.User{ID: "u1", Email: req.Email}, Token: "token-u1"}, nil
}

func (f *fakeUserService) GetUser(_ context.Context, id string, actor domain.Actor) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Rina"}, nil
}

func (f *fakeUserService) AdminUpdateUser(_ context.Context, id string, req domain.AdminUpdateUserRequest, actor domain.Actor) (*domain.User, error) {
	f.adminEdits = append(f.adminEdits, req)
	return &domain.User{ID: id, EcoPoints: *req.EcoPoints}, nil
}

func (f *fakeUserService) DeleteUser(_ context.Context, id string, actor domain.Actor) error {
	if id == actor.UserID {
		return domain.ErrCannotDeleteSelf
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePickupService struct {
	pickup.PickupService
	err error

	statsFor    string
	completeReq *domain.CompletePickupRequest
	adminReq    *domain.AdminUpdatePickupRequest
	actor       domain.Actor
	listed      *domain.PickupFilter
}

func (f *fakePickupService) GetUserPickups(_ context.Context, filter domain.PickupFilter) ([]*domain.Pickup, int64, error) {
	f.listed = &filter
	return []*domain.Pickup{{ID: "p1", UserID: filter.UserID}}, 1, nil
}

func (f *fakePickupService) GetUserStats(_ context.Context, userID string) (*domain.UserPickupStats, error) {
	f.statsFor = userID
	return &domain.UserPickupStats{EcoPoints: 52, Level: 1}, nil
}

func (f *fakePickupService) CompletePickup(_ context.Context, id string, req domain.CompletePickupRequest, actor domain.Actor) (*domain.Pickup, error) {
	f.completeReq = &req
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Pickup{ID: id, Status: string(domain.StatusCompleted)}, nil
}

func (f *fakePickupService) CancelPickup(_ context.Context, id string, actor domain.Actor) (*domain.Pickup, error) {
	f.actor = actor
	return &domain.Pickup{ID: id, Status: string(domain.StatusCancelled)}, nil
}

func (f *fakePickupService) AdminUpdateStatus(_ context.Context, id string, req domain.AdminUpdatePickupRequest, actor domain.Actor) (*domain.Pickup, error) {
	f.adminReq = &req
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Pickup{ID: id, Status: *req.Status}, nil
}

type fakeNotificationService struct {
	notification.NotificationService
	limit int
}

func (f *fakeNotificationService) ListNotifications(_ context.Context, userID string, limit int) (*domain.NotificationList, error) {
	f.limit = limit
	return &domain.NotificationList{Notifications: []*domain.Notification{}}, nil
}

type testServer struct {
	app           *fiber.App
	users         *fakeUserService
	pickups       *fakePickupService
	notifications *fakeNotificationService
}

func newTestServer() *testServer {
	utils.InitValidator()
	s := &testServer{
		app:           fiber.New(),
		users:         &fakeUserService{},
		pickups:       &fakePickupService{},
		notifications: &fakeNotificationService{},
	}

	cfg := Config{
		App:                 s.app,
		UserHandler:         handlers.NewUserHandler(s.users, utils.Validate),
		PickupHandler:       handlers.NewPickupHandler(s.pickups, utils.Validate),
		AdminHandler:        handlers.NewAdminHandler(s.pickups, s.users, utils.Validate),
		NotificationHandler: handlers.NewNotificationHandler(s.notifications),
		Middleware:          middleware.NewMiddleware(),
		JWTService:          fakeJWT{},
	}
	cfg.Setup()
	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, presenters.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out presenters.Response
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestPing(t *testing.T) {
	s := newTestServer()
	code, _ := s.do(t, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRegister(t *testing.T) {
	s := newTestServer()

	code, res := s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"name":"Rina","email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, res.Status)
	assert.Empty(t, s.users.registered)

	code, res = s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"name":"Rina","email":"rina@ecosync.id","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, res.Status)
	require.Len(t, s.users.registered, 1)
	assert.Equal(t, "rina@ecosync.id", s.users.registered[0].Email)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodGet, "/api/v1/pickups/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/pickups/stats", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestStatsRouteResolvesBeforeID(t *testing.T) {
	s := newTestServer()

	code, res := s.do(t, http.MethodGet, "/api/v1/pickups/stats", "user-token", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Status)
	assert.Equal(t, "u1", s.pickups.statsFor)
}

func TestCompleteWithoutBody(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodPost, "/api/v1/pickups/p1/complete", "user-token", "")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, s.pickups.completeReq)
	assert.Nil(t, s.pickups.completeReq.ActualWeight)
	assert.Equal(t, domain.Actor{UserID: "u1", Role: domain.RoleUser}, s.pickups.actor)
}

func TestOwnerDeleteCancels(t *testing.T) {
	s := newTestServer()

	code, res := s.do(t, http.MethodDelete, "/api/v1/pickups/p1", "user-token", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.MessageSuccessCancelPickup, res.Message)
	assert.Equal(t, "u1", s.pickups.actor.UserID)
}

func TestCompleteRejectsNegativeWeight(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodPost, "/api/v1/pickups/p1/complete", "user-token", `{"actual_weight":-1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Nil(t, s.pickups.completeReq)
}

func TestLifecycleErrorsMapToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrPickupNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrUnauthorizedPickupAccess, http.StatusForbidden},
		{"conflict", domain.ErrPickupConflict, http.StatusConflict},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"terminal", domain.ErrPickupLocked, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.pickups.err = tt.err

			code, res := s.do(t, http.MethodPost, "/api/v1/pickups/p1/complete", "user-token", `{"actual_weight":2}`)
			assert.Equal(t, tt.want, code)
			assert.False(t, res.Status)
		})
	}
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodPut, "/api/v1/admin/pickups/p1", "user-token", `{"status":"scheduled"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Nil(t, s.pickups.adminReq)

	code, _ = s.do(t, http.MethodPut, "/api/v1/admin/pickups/p1", "admin-token", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Nil(t, s.pickups.adminReq)

	code, res := s.do(t, http.MethodPut, "/api/v1/admin/pickups/p1", "admin-token", `{"status":"scheduled","admin_notes":"Truck 3"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Status)
	require.NotNil(t, s.pickups.adminReq)
	assert.Equal(t, "Truck 3", *s.pickups.adminReq.AdminNotes)
	assert.True(t, s.pickups.actor.IsAdmin())
}

func TestNotificationLimitQuery(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodGet, "/api/v1/notifications?limit=5", "user-token", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, s.notifications.limit)

	code, _ = s.do(t, http.MethodGet, "/api/v1/notifications", "user-token", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.DefaultNotificationLimit, s.notifications.limit)
}

func TestAdminUserRoutes(t *testing.T) {
	s := newTestServer()

	code, _ := s.do(t, http.MethodPut, "/api/v1/admin/users/u9", "user-token", `{"eco_points":10}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPut, "/api/v1/admin/users/u9", "admin-token", `{"eco_points":-5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, s.users.adminEdits)

	code, res := s.do(t, http.MethodPut, "/api/v1/admin/users/u9", "admin-token", `{"eco_points":2500}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Status)
	require.Len(t, s.users.adminEdits, 1)
	assert.Equal(t, 2500, *s.users.adminEdits[0].EcoPoints)

	code, _ = s.do(t, http.MethodGet, "/api/v1/admin/users/u9", "admin-token", "")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, s.pickups.listed)
	assert.Equal(t, "u9", s.pickups.listed.UserID)
	assert.Equal(t, 20, s.pickups.listed.Limit)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/admin/users/a1", "admin-token", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/admin/users/u9", "admin-token", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"u9"}, s.users.deleted)
}
