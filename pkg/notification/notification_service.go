package notification

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/internal/utils/mailing"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const deliveryTimeout = 10 * time.Second

type (
	NotificationService interface {
		// PickupStatusChanged schedules delivery and returns immediately.
		// Delivery failures are logged, never returned.
		PickupStatusChanged(ctx context.Context, event domain.PickupStatusEvent)
		// Wait blocks until every scheduled delivery has finished.
		Wait()

		ListNotifications(ctx context.Context, userID string, limit int) (*domain.NotificationList, error)
		MarkAsRead(ctx context.Context, id string, userID string) error
		MarkAllAsRead(ctx context.Context, userID string) error
		DeleteNotification(ctx context.Context, id string, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		mailer                 mailing.Mailer
		wg                     sync.WaitGroup
	}
)

// NewNotificationService wires the inbox store. mailer may be nil.
func NewNotificationService(notificationRepository NotificationRepository, mailer mailing.Mailer) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		mailer:                 mailer,
	}
}

func (s *notificationService) PickupStatusChanged(ctx context.Context, event domain.PickupStatusEvent) {
	// the request context ends with the response
	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.deliver(deliveryCtx, event)
	}()
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}

func (s *notificationService) deliver(ctx context.Context, event domain.PickupStatusEvent) {
	msg := BuildPickupMessage(event)

	recipientID, err := uuid.Parse(event.Pickup.UserID)
	if err != nil {
		log.Errorf("notification for pickup %s: invalid recipient %q", event.Pickup.PickupCode, event.Pickup.UserID)
		return
	}

	notification := &entities.Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       msg.Title,
		Message:     msg.Message,
		Type:        msg.Type,
		Link:        msg.Link,
		CreatedAt:   time.Now(),
	}
	if pickupID, err := uuid.Parse(event.Pickup.ID); err == nil {
		notification.RelatedPickupID = &pickupID
	}

	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Errorf("failed to store notification for pickup %s: %v", event.Pickup.PickupCode, err)
	}

	if s.mailer == nil || !s.mailer.Enabled() || event.Pickup.UserEmail == "" {
		return
	}
	body := fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", event.Pickup.UserName, msg.Message)
	if err := s.mailer.SendMail(event.Pickup.UserEmail, msg.Title, body); err != nil {
		log.Errorf("failed to email notification for pickup %s: %v", event.Pickup.PickupCode, err)
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit int) (*domain.NotificationList, error) {
	if limit < 1 {
		limit = domain.DefaultNotificationLimit
	}
	if limit > domain.MaxNotificationLimit {
		limit = domain.MaxNotificationLimit
	}

	notifications, err := s.notificationRepository.GetUserNotifications(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		item := &domain.Notification{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			Link:      n.Link,
			CreatedAt: n.CreatedAt,
		}
		if n.RelatedPickupID != nil {
			item.RelatedPickupID = n.RelatedPickupID.String()
		}
		result = append(result, item)
	}

	return &domain.NotificationList{
		Notifications: result,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.notificationRepository.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.notificationRepository.DeleteNotification(ctx, id)
}

func (s *notificationService) getOwned(ctx context.Context, id string, userID string) (*entities.Notification, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	n, err := s.notificationRepository.GetNotificationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID.String() != userID {
		return nil, domain.ErrUnauthorizedNotificationAccess
	}
	return n, nil
}
