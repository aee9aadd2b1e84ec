package utils

import (
	"EcoSync-Backend/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePickupRequest(t *testing.T) {
	InitValidator()

	valid := domain.PickupRequest{
		WasteType:       domain.WasteEWaste,
		ScheduledDate:   "2024-06-01",
		TimeSlot:        "09:00 - 11:00",
		Address:         "Jl. Merdeka 10",
		EstimatedWeight: 2.5,
	}
	assert.NoError(t, Validate.Struct(valid))

	badType := valid
	badType.WasteType = "furniture"
	assert.Error(t, Validate.Struct(badType))

	badDate := valid
	badDate.ScheduledDate = "01/06/2024"
	assert.Error(t, Validate.Struct(badDate))

	negative := valid
	negative.EstimatedWeight = -1
	assert.Error(t, Validate.Struct(negative))

	huge := valid
	huge.EstimatedWeight = domain.MaxWeight + 0.5
	assert.Error(t, Validate.Struct(huge))
}

func TestValidateWeightBounds(t *testing.T) {
	InitValidator()

	limit := float64(domain.MaxWeight)
	assert.NoError(t, Validate.Struct(domain.CompletePickupRequest{ActualWeight: &limit}))

	over := limit + 1
	assert.Error(t, Validate.Struct(domain.CompletePickupRequest{ActualWeight: &over}))
	assert.Error(t, Validate.Struct(domain.AdminUpdatePickupRequest{ActualWeight: &over}))
	assert.Error(t, Validate.Struct(domain.UpdatePickupRequest{EstimatedWeight: &over}))
	assert.Error(t, Validate.Struct(domain.UpdatePickupRequest{ActualWeight: &over}))
}

func TestValidateAdminStatus(t *testing.T) {
	InitValidator()

	status := "in-progress"
	assert.NoError(t, Validate.Struct(domain.AdminUpdatePickupRequest{Status: &status}))

	unknown := "archived"
	assert.Error(t, Validate.Struct(domain.AdminUpdatePickupRequest{Status: &unknown}))
}
