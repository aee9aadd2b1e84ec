// Package reward holds the eco point and carbon offset arithmetic shared by
// every completion path.
package reward

import (
	"EcoSync-Backend/domain"
	"math"
)

const (
	DefaultRate = 5

	PointsPerLevel = 1000

	// MaxPoints caps a single award.
	MaxPoints = math.MaxInt32

	// kg CO2 saved per kg recycled
	ownerOffsetFactor = 0.7
	adminOffsetFactor = 2.5
)

var rates = map[string]int{
	domain.WasteRecyclable: 10,
	domain.WasteOrganic:    5,
	domain.WasteEWaste:     20,
	domain.WasteHazardous:  15,
}

// Rate returns the points awarded per kilogram of the given waste type.
func Rate(wasteType string) int {
	if r, ok := rates[wasteType]; ok {
		return r
	}
	return DefaultRate
}

// Points is round(weight x rate), saturating at MaxPoints.
func Points(wasteType string, weight float64) int {
	if weight <= 0 || math.IsNaN(weight) {
		return 0
	}
	points := math.Round(weight * float64(Rate(wasteType)))
	if points >= MaxPoints {
		return MaxPoints
	}
	return int(points)
}

// OwnerCarbonOffset is the offset credited when the owner completes a pickup.
func OwnerCarbonOffset(weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return math.Round(weight * ownerOffsetFactor)
}

// AdminCarbonOffset is the offset credited when an administrator completes a pickup.
func AdminCarbonOffset(weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return weight * adminOffsetFactor
}

func Level(points int) int {
	if points < 0 {
		return 1
	}
	return points/PointsPerLevel + 1
}

// EffectiveWeight picks the measured weight when one was supplied and falls
// back to the estimate otherwise.
func EffectiveWeight(actual *float64, estimated float64) float64 {
	if actual != nil && *actual >= 0 {
		return *actual
	}
	if estimated < 0 {
		return 0
	}
	return estimated
}
