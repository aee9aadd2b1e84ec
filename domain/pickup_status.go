package domain

type PickupStatus string

const (
	StatusPending    PickupStatus = "pending"
	StatusScheduled  PickupStatus = "scheduled"
	StatusInProgress PickupStatus = "in-progress"
	StatusCompleted  PickupStatus = "completed"
	StatusCancelled  PickupStatus = "cancelled"
)

// pickupTransitions lists every allowed edge. Scheduled is a synonym of
// pending; completed and cancelled have no outgoing edges.
var pickupTransitions = map[PickupStatus][]PickupStatus{
	StatusPending:    {StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusScheduled:  {StatusPending, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s PickupStatus) Valid() bool {
	_, ok := pickupTransitions[s]
	return ok
}

func (s PickupStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s PickupStatus) String() string {
	return string(s)
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
// A same-status request is not an edge.
func CanTransition(from, to PickupStatus) bool {
	for _, next := range pickupTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
