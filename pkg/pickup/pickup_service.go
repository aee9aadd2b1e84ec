package pickup

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/internal/utils/storage"
	"EcoSync-Backend/pkg/reward"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	recentUserPickups  = 5
	recentAdminPickups = 10
)

type (
	PickupService interface {
		CreatePickup(ctx context.Context, req domain.PickupRequest, userID string) (*domain.Pickup, error)
		GetUserPickups(ctx context.Context, filter domain.PickupFilter) ([]*domain.Pickup, int64, error)
		GetPickupByID(ctx context.Context, id string, actor domain.Actor) (*domain.Pickup, error)
		GetUserStats(ctx context.Context, userID string) (*domain.UserPickupStats, error)

		UpdatePickup(ctx context.Context, id string, req domain.UpdatePickupRequest, actor domain.Actor) (*domain.Pickup, error)
		CompletePickup(ctx context.Context, id string, req domain.CompletePickupRequest, actor domain.Actor) (*domain.Pickup, error)
		CancelPickup(ctx context.Context, id string, actor domain.Actor) (*domain.Pickup, error)

		ListAllPickups(ctx context.Context, filter domain.PickupFilter, actor domain.Actor) ([]*domain.Pickup, int64, error)
		AdminUpdateStatus(ctx context.Context, id string, req domain.AdminUpdatePickupRequest, actor domain.Actor) (*domain.Pickup, error)
		GetAdminStats(ctx context.Context, actor domain.Actor) (*domain.AdminStats, error)
		DeletePickup(ctx context.Context, id string, actor domain.Actor) error
	}

	// StatusNotifier receives committed administrator status changes.
	StatusNotifier interface {
		PickupStatusChanged(ctx context.Context, event domain.PickupStatusEvent)
	}

	UserReader interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		CountUsers(ctx context.Context, role string, since *time.Time) (int64, error)
	}

	pickupService struct {
		pickupRepository PickupRepository
		userRepository   UserReader
		s3               storage.AwsS3
		notifier         StatusNotifier
		now              func() time.Time
	}
)

func NewPickupService(pickupRepository PickupRepository, userRepository UserReader, s3 storage.AwsS3, notifier StatusNotifier) PickupService {
	return &pickupService{
		pickupRepository: pickupRepository,
		userRepository:   userRepository,
		s3:               s3,
		notifier:         notifier,
		now:              time.Now,
	}
}

func (s *pickupService) CreatePickup(ctx context.Context, req domain.PickupRequest, userID string) (*domain.Pickup, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if !domain.IsWasteType(req.WasteType) {
		return nil, domain.ErrInvalidWasteType
	}
	if !domain.ValidWeight(req.EstimatedWeight) {
		return nil, domain.ErrInvalidWeight
	}
	scheduled, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pickup := &entities.Pickup{
		ID:              uuid.New(),
		UserID:          userUUID,
		WasteType:       req.WasteType,
		ScheduledDate:   scheduled,
		TimeSlot:        strings.TrimSpace(req.TimeSlot),
		Address:         strings.TrimSpace(req.Address),
		EstimatedWeight: req.EstimatedWeight,
		Notes:           req.Notes,
		Status:          domain.StatusPending.String(),
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	var objectKey string
	if req.Image != nil {
		if s.s3 == nil || !s.s3.Enabled() {
			log.Warnf("pickup photo dropped for user %s: storage disabled", userID)
		} else {
			objectKey, err = s.s3.UploadFile(pickup.ID.String(), req.Image, "pickups", storage.AllowImage...)
			if err != nil {
				return nil, err
			}
			pickup.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	if err := s.pickupRepository.CreatePickup(ctx, pickup); err != nil {
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
		return nil, err
	}

	return ToPickupDomain(pickup), nil
}

func (s *pickupService) GetUserPickups(ctx context.Context, filter domain.PickupFilter) ([]*domain.Pickup, int64, error) {
	if _, err := uuid.Parse(filter.UserID); err != nil {
		return nil, 0, domain.ErrParseUUID
	}
	if err := normalizeFilter(&filter); err != nil {
		return nil, 0, err
	}
	return s.listPickups(ctx, filter)
}

func (s *pickupService) GetPickupByID(ctx context.Context, id string, actor domain.Actor) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && pickup.UserID.String() != actor.UserID {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	return ToPickupDomain(pickup), nil
}

func (s *pickupService) GetUserStats(ctx context.Context, userID string) (*domain.UserPickupStats, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	thisMonthWeight, err := s.pickupRepository.SumCompletedWeight(ctx, userID, thisMonth, thisMonth.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	lastMonthWeight, err := s.pickupRepository.SumCompletedWeight(ctx, userID, lastMonth, thisMonth)
	if err != nil {
		return nil, err
	}

	recent, err := s.pickupRepository.GetRecentPickups(ctx, userID, recentUserPickups)
	if err != nil {
		return nil, err
	}
	next, err := s.pickupRepository.GetNextPickup(ctx, userID, dayStart(now))
	if err != nil {
		return nil, err
	}

	stats := &domain.UserPickupStats{
		TotalRecycled: u.TotalRecycled,
		CarbonOffset:  u.CarbonOffset,
		EcoPoints:     u.EcoPoints,
		Level:         reward.Level(u.EcoPoints),
		RecycledTrend: RecycledTrend(thisMonthWeight, lastMonthWeight),
		RecentPickups: make([]*domain.RecentPickup, 0, len(recent)),
	}
	for _, p := range recent {
		stats.RecentPickups = append(stats.RecentPickups, &domain.RecentPickup{
			Type:   domain.WasteTypeLabel(p.WasteType),
			Date:   p.CreatedAt,
			Status: capitalize(p.Status),
		})
	}
	if next != nil {
		stats.NextPickup = &domain.NextPickup{
			Date: next.ScheduledDate,
			Time: next.TimeSlot,
			Type: domain.WasteTypeLabel(next.WasteType),
		}
	}

	return stats, nil
}

func (s *pickupService) ListAllPickups(ctx context.Context, filter domain.PickupFilter, actor domain.Actor) ([]*domain.Pickup, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, domain.ErrUserNotAllowed
	}
	if filter.WasteType != "" && !domain.IsWasteType(filter.WasteType) {
		return nil, 0, domain.ErrInvalidWasteType
	}
	if err := normalizeFilter(&filter); err != nil {
		return nil, 0, err
	}
	return s.listPickups(ctx, filter)
}

func (s *pickupService) GetAdminStats(ctx context.Context, actor domain.Actor) (*domain.AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}

	totalUsers, err := s.userRepository.CountUsers(ctx, domain.RoleUser, nil)
	if err != nil {
		return nil, err
	}
	since := monthStart(s.now())
	newUsers, err := s.userRepository.CountUsers(ctx, domain.RoleUser, &since)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.pickupRepository.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.pickupRepository.GetWasteTypeStats(ctx)
	if err != nil {
		return nil, err
	}
	weight, points, err := s.pickupRepository.GetCompletedTotals(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.pickupRepository.GetRecentPickups(ctx, "", recentAdminPickups)
	if err != nil {
		return nil, err
	}

	counts := domain.AdminPickupCounts{
		Pending:    byStatus[domain.StatusPending.String()],
		InProgress: byStatus[domain.StatusInProgress.String()],
		Completed:  byStatus[domain.StatusCompleted.String()],
		Cancelled:  byStatus[domain.StatusCancelled.String()],
		ByType:     byType,
	}
	for _, c := range byStatus {
		counts.Total += c
	}

	return &domain.AdminStats{
		Users: domain.AdminUserCounts{
			Total:        totalUsers,
			NewThisMonth: newUsers,
		},
		Pickups: counts,
		Totals: domain.AdminTotals{
			WasteRecycled:    weight,
			EcoPointsAwarded: points,
			CarbonOffset:     reward.AdminCarbonOffset(weight),
		},
		RecentPickups: toPickupDomains(recent),
	}, nil
}

func (s *pickupService) DeletePickup(ctx context.Context, id string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		return domain.ErrUserNotAllowed
	}

	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pickupRepository.DeletePickup(ctx, id); err != nil {
		return err
	}

	if pickup.ImageURL != "" && s.s3 != nil && s.s3.Enabled() {
		if key := s.s3.GetObjectKeyFromLink(pickup.ImageURL); key != "" {
			if err := s.s3.DeleteFile(key); err != nil {
				log.Warnf("pickup %s deleted but photo %s was kept: %v", pickup.PickupCode, key, err)
			}
		}
	}
	return nil
}

func (s *pickupService) listPickups(ctx context.Context, filter domain.PickupFilter) ([]*domain.Pickup, int64, error) {
	pickups, count, err := s.pickupRepository.GetPickups(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toPickupDomains(pickups), count, nil
}

func (s *pickupService) getPickup(ctx context.Context, id string) (*entities.Pickup, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.pickupRepository.GetPickupByID(ctx, id)
}

// normalizeFilter treats "all" as no status filter and clamps paging.
func normalizeFilter(filter *domain.PickupFilter) error {
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Status != "" && !domain.PickupStatus(filter.Status).Valid() {
		return domain.ErrInvalidPickupStatus
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
	return nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.ErrInvalidScheduledDate
	}
	return t, nil
}

// RecycledTrend formats the month over month change of recycled weight, e.g. "+25%".
func RecycledTrend(thisMonth, lastMonth float64) string {
	var trend int
	switch {
	case lastMonth > 0:
		trend = int(math.Round((thisMonth - lastMonth) / lastMonth * 100))
	case thisMonth > 0:
		trend = 100
	}
	if trend >= 0 {
		return fmt.Sprintf("+%d%%", trend)
	}
	return fmt.Sprintf("%d%%", trend)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ToPickupDomain(p *entities.Pickup) *domain.Pickup {
	result := &domain.Pickup{
		ID:              p.ID.String(),
		PickupCode:      p.PickupCode,
		UserID:          p.UserID.String(),
		WasteType:       p.WasteType,
		ScheduledDate:   p.ScheduledDate,
		TimeSlot:        p.TimeSlot,
		Address:         p.Address,
		EstimatedWeight: p.EstimatedWeight,
		ActualWeight:    p.ActualWeight,
		Notes:           p.Notes,
		AdminNotes:      p.AdminNotes,
		Status:          p.Status,
		EcoPointsEarned: p.EcoPointsEarned,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		CompletedAt:     p.CompletedAt,
	}
	if p.User != nil {
		result.UserName = p.User.Name
		result.UserEmail = p.User.Email
	}
	return result
}

func toPickupDomains(pickups []*entities.Pickup) []*domain.Pickup {
	result := make([]*domain.Pickup, 0, len(pickups))
	for _, p := range pickups {
		result = append(result, ToPickupDomain(p))
	}
	return result
}
