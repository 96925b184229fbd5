package utils

import (
	"medibook-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("slot_date", validateSlotDate)
	validate.RegisterValidation("slot_time", validateSlotTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSlotDate(fl validator.FieldLevel) bool {
	_, err := ParseSlotDateKey(fl.Field().String())
	return err == nil
}

func validateSlotTime(fl validator.FieldLevel) bool {
	clock, err := ParseSlotTimeLabel(fl.Field().String())
	if err != nil {
		return false
	}
	return clock.Minute()%constvars.SlotGranularityMinute == 0
}
