package utils

import (
	"EcoSync-Backend/domain"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("waste_type", func(fl validator.FieldLevel) bool {
		return domain.IsWasteType(fl.Field().String())
	})
}
