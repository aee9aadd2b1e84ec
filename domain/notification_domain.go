package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetNotifications   = "notifications retrieved successfully"
	MessageSuccessReadNotification   = "notification marked as read"
	MessageSuccessReadAll            = "all notifications marked as read"
	MessageSuccessDeleteNotification = "notification deleted"

	MessageFailedGetNotifications   = "failed to retrieve notifications"
	MessageFailedReadNotification   = "failed to mark notification as read"
	MessageFailedReadAll            = "failed to mark notifications as read"
	MessageFailedDeleteNotification = "failed to delete notification"

	ErrNotificationNotFound           = fmt.Errorf("notification not found: %w", ErrNotFound)
	ErrUnauthorizedNotificationAccess = fmt.Errorf("unauthorized access to notification: %w", ErrForbidden)
)

const (
	NotificationPickupAccepted  = "pickup_accepted"
	NotificationPickupRejected  = "pickup_rejected"
	NotificationPickupCompleted = "pickup_completed"
	NotificationPickupScheduled = "pickup_scheduled"
	NotificationSystem          = "system"
	NotificationAdmin           = "admin"

	PickupHistoryLink = "/dashboard/history"

	DefaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

type (
	Notification struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Message         string    `json:"message"`
		Type            string    `json:"type"`
		Read            bool      `json:"read"`
		Link            string    `json:"link,omitempty"`
		RelatedPickupID string    `json:"related_pickup_id,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	NotificationList struct {
		Notifications []*Notification `json:"notifications"`
		UnreadCount   int64           `json:"unread_count"`
	}
)
