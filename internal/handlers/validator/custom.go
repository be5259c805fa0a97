package validator

import (
	"strings"

	"github.com/AakashShahi/workday/pkg/schedule"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var utc, _ = schedule.NewCalendar("")

func jobDateValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := utc.Parse(val, "00:00")
	return err == nil
}

func jobTimeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := utc.Parse("2000-01-01", val)
	return err == nil
}

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}

func notBlankValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}
