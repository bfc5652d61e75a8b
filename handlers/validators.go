package handlers

import (
	"fmt"

	"medconnect/models"
	"medconnect/services/availability"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the weekday and hhmm tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("weekday", validWeekday); err != nil {
		return err
	}
	return v.RegisterValidation("hhmm", validClock)
}

func validWeekday(fl validator.FieldLevel) bool {
	_, ok := models.ParseWeekday(fl.Field().String())
	return ok
}

func validClock(fl validator.FieldLevel) bool {
	return availability.IsClock(fl.Field().String())
}
