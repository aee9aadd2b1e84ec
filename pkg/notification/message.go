package notification

import (
	"EcoSync-Backend/domain"
	"fmt"
)

type Message struct {
	Title   string
	Message string
	Type    string
	Link    string
}

// BuildPickupMessage renders the notification for an administrator status change.
func BuildPickupMessage(event domain.PickupStatusEvent) Message {
	p := event.Pickup
	label := domain.WasteTypeLabel(p.WasteType)
	msg := Message{Link: domain.PickupHistoryLink}

	switch event.NewStatus {
	case domain.StatusInProgress:
		msg.Title = "Pickup Accepted! 🎉"
		msg.Message = fmt.Sprintf("Your %s pickup (%s) has been accepted and is scheduled for collection.", label, p.PickupCode)
		if event.AdminNote != "" {
			msg.Message += " Note: " + event.AdminNote
		}
		msg.Type = domain.NotificationPickupAccepted
	case domain.StatusCompleted:
		msg.Title = "Pickup Completed! ✅"
		msg.Message = fmt.Sprintf("Your %s pickup (%s) has been completed. You earned %d eco points!", label, p.PickupCode, p.EcoPointsEarned)
		msg.Type = domain.NotificationPickupCompleted
	case domain.StatusCancelled:
		msg.Title = "Pickup Declined"
		msg.Message = fmt.Sprintf("Your %s pickup (%s) could not be processed.", label, p.PickupCode)
		if event.AdminNote != "" {
			msg.Message += " Reason: " + event.AdminNote
		} else {
			msg.Message += " Please contact support for assistance."
		}
		msg.Type = domain.NotificationPickupRejected
	default:
		msg.Title = "Pickup Status Updated"
		msg.Message = fmt.Sprintf("Your pickup (%s) status has been updated to %s.", p.PickupCode, event.NewStatus)
		msg.Type = domain.NotificationSystem
	}

	return msg
}
