package pickup

import (
	"EcoSync-Backend/domain"
	"EcoSync-Backend/entities"
	"EcoSync-Backend/pkg/reward"
	"context"
	"fmt"
	"strings"
)

// AdminUpdateStatus moves a pickup through the administrator workflow and
// notifies the owner once the change is committed. A request that leaves the
// status unchanged has no side effects.
func (s *pickupService) AdminUpdateStatus(ctx context.Context, id string, req domain.AdminUpdatePickupRequest, actor domain.Actor) (*domain.Pickup, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	if err := checkWeight(req.ActualWeight); err != nil {
		return nil, err
	}

	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := domain.PickupStatus(pickup.Status)
	target := prev
	if req.Status != nil {
		target = domain.PickupStatus(*req.Status)
		if !target.Valid() {
			return nil, domain.ErrInvalidPickupStatus
		}
	}

	changed := target != prev
	if changed {
		if err := checkTransition(prev, target); err != nil {
			return nil, err
		}
	}

	notesChanged := req.AdminNotes != nil && *req.AdminNotes != pickup.AdminNotes
	if !changed && !notesChanged {
		return ToPickupDomain(pickup), nil
	}
	if req.AdminNotes != nil {
		pickup.AdminNotes = *req.AdminNotes
	}

	var delta *domain.LedgerDelta
	if changed && target == domain.StatusCompleted {
		delta = s.complete(pickup, req.ActualWeight, reward.AdminCarbonOffset)
	}
	pickup.Status = target.String()

	if err := s.pickupRepository.SavePickup(ctx, pickup, prev.String(), delta); err != nil {
		return nil, err
	}

	result := ToPickupDomain(pickup)
	if changed && s.notifier != nil {
		var note string
		if req.AdminNotes != nil {
			note = *req.AdminNotes
		}
		s.notifier.PickupStatusChanged(ctx, domain.PickupStatusEvent{
			Pickup:         *result,
			PreviousStatus: prev,
			NewStatus:      target,
			AdminNote:      note,
		})
	}

	return result, nil
}

// CompletePickup is the owner's own completion. Completing twice is a no-op.
func (s *pickupService) CompletePickup(ctx context.Context, id string, req domain.CompletePickupRequest, actor domain.Actor) (*domain.Pickup, error) {
	if err := checkWeight(req.ActualWeight); err != nil {
		return nil, err
	}

	pickup, err := s.getOwnedPickup(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	prev := domain.PickupStatus(pickup.Status)
	if prev == domain.StatusCompleted {
		return ToPickupDomain(pickup), nil
	}
	if err := checkTransition(prev, domain.StatusCompleted); err != nil {
		return nil, err
	}

	delta := s.complete(pickup, req.ActualWeight, reward.OwnerCarbonOffset)
	if err := s.pickupRepository.SavePickup(ctx, pickup, prev.String(), delta); err != nil {
		return nil, err
	}

	return ToPickupDomain(pickup), nil
}

// CancelPickup only changes the status. Cancelling twice is a no-op.
func (s *pickupService) CancelPickup(ctx context.Context, id string, actor domain.Actor) (*domain.Pickup, error) {
	pickup, err := s.getOwnedPickup(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	prev := domain.PickupStatus(pickup.Status)
	if prev == domain.StatusCancelled {
		return ToPickupDomain(pickup), nil
	}
	if err := checkTransition(prev, domain.StatusCancelled); err != nil {
		return nil, err
	}

	pickup.Status = domain.StatusCancelled.String()
	if err := s.pickupRepository.SavePickup(ctx, pickup, prev.String(), nil); err != nil {
		return nil, err
	}

	return ToPickupDomain(pickup), nil
}

// UpdatePickup applies an owner edit. A status in the request is routed
// through the same transitions as CompletePickup and CancelPickup.
func (s *pickupService) UpdatePickup(ctx context.Context, id string, req domain.UpdatePickupRequest, actor domain.Actor) (*domain.Pickup, error) {
	pickup, err := s.getOwnedPickup(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	prev := domain.PickupStatus(pickup.Status)
	target := prev
	if req.Status != nil {
		target = domain.PickupStatus(*req.Status)
		if !target.Valid() {
			return nil, domain.ErrInvalidPickupStatus
		}
	}

	if prev.IsTerminal() {
		if target == prev && !hasFieldEdits(req) {
			return ToPickupDomain(pickup), nil
		}
		return nil, fmt.Errorf("%w: pickup is already %s", domain.ErrPickupLocked, prev)
	}

	changed := target != prev
	if changed {
		// accepting a pickup is reserved for administrators
		if target == domain.StatusInProgress {
			return nil, domain.ErrUserNotAllowed
		}
		if err := checkTransition(prev, target); err != nil {
			return nil, err
		}
	}

	edited, err := applyFieldEdits(pickup, req)
	if err != nil {
		return nil, err
	}
	if !changed && !edited {
		return ToPickupDomain(pickup), nil
	}

	var delta *domain.LedgerDelta
	if changed && target == domain.StatusCompleted {
		if err := checkWeight(req.ActualWeight); err != nil {
			return nil, err
		}
		delta = s.complete(pickup, req.ActualWeight, reward.OwnerCarbonOffset)
	}
	pickup.Status = target.String()

	if err := s.pickupRepository.SavePickup(ctx, pickup, prev.String(), delta); err != nil {
		return nil, err
	}

	return ToPickupDomain(pickup), nil
}

// complete stamps the completion fields on p and returns the owner's ledger delta.
func (s *pickupService) complete(p *entities.Pickup, actualWeight *float64, offset func(float64) float64) *domain.LedgerDelta {
	weight := reward.EffectiveWeight(actualWeight, p.EstimatedWeight)
	points := reward.Points(p.WasteType, weight)
	now := s.now()

	p.ActualWeight = weight
	p.EcoPointsEarned = points
	p.CompletedAt = &now
	p.Status = domain.StatusCompleted.String()

	return &domain.LedgerDelta{
		Weight:       weight,
		CarbonOffset: offset(weight),
		Points:       points,
		PickupID:     p.ID.String(),
		Description:  fmt.Sprintf("Recycled %.1f kg of %s waste (%s)", weight, domain.WasteTypeLabel(p.WasteType), p.PickupCode),
	}
}

func (s *pickupService) getOwnedPickup(ctx context.Context, id string, actor domain.Actor) (*entities.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}
	if pickup.UserID.String() != actor.UserID {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	return pickup, nil
}

func checkTransition(from, to domain.PickupStatus) error {
	if domain.CanTransition(from, to) {
		return nil
	}
	if from.IsTerminal() {
		return fmt.Errorf("%w: pickup is already %s", domain.ErrPickupLocked, from)
	}
	return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, to)
}

func checkWeight(weight *float64) error {
	if weight != nil && !domain.ValidWeight(*weight) {
		return domain.ErrInvalidWeight
	}
	return nil
}

func hasFieldEdits(req domain.UpdatePickupRequest) bool {
	return req.WasteType != nil || req.ScheduledDate != nil || req.TimeSlot != nil ||
		req.Address != nil || req.EstimatedWeight != nil || req.Notes != nil
}

// applyFieldEdits copies the non-nil request fields onto p and reports whether
// any stored value changed.
func applyFieldEdits(p *entities.Pickup, req domain.UpdatePickupRequest) (bool, error) {
	before := *p

	if req.WasteType != nil {
		if !domain.IsWasteType(*req.WasteType) {
			return false, domain.ErrInvalidWasteType
		}
		p.WasteType = *req.WasteType
	}
	if req.ScheduledDate != nil {
		t, err := parseDate(*req.ScheduledDate)
		if err != nil {
			return false, err
		}
		p.ScheduledDate = t
	}
	if req.TimeSlot != nil && strings.TrimSpace(*req.TimeSlot) != "" {
		p.TimeSlot = strings.TrimSpace(*req.TimeSlot)
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		p.Address = strings.TrimSpace(*req.Address)
	}
	if req.EstimatedWeight != nil {
		if !domain.ValidWeight(*req.EstimatedWeight) {
			return false, domain.ErrInvalidWeight
		}
		p.EstimatedWeight = *req.EstimatedWeight
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	changed := p.WasteType != before.WasteType ||
		!p.ScheduledDate.Equal(before.ScheduledDate) ||
		p.TimeSlot != before.TimeSlot ||
		p.Address != before.Address ||
		p.EstimatedWeight != before.EstimatedWeight ||
		p.Notes != before.Notes
	return changed, nil
}
