package pickup

import (
	"EcoSync-Backend/domain"
	"fmt"
	"time"
)

// FormatPickupCode renders the public code, e.g. #ECO-2024-003.
func FormatPickupCode(year, ordinal int) string {
	return fmt.Sprintf("%s-%d-%03d", domain.PickupCodePrefix, year, ordinal)
}

func yearBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
