package validation

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// timeSlotLayout is the wire format for slot times, e.g. "19:00".
const timeSlotLayout = "15:04"

// RegisterCustomValidators wires domain validation tags into gin's binding
// engine. Must run once before the first request is bound.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("timeslot", validTimeSlot)
}

// validTimeSlot accepts 24h HH:MM strings.
func validTimeSlot(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	_, err := time.Parse(timeSlotLayout, value)
	return err == nil
}
