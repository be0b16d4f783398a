package utils

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

// RegisterValidations adds the "shift" and "day" tags and their English
// messages to v.
func RegisterValidations(v *validator.Validate, trans ut.Translator) error {
	if err := v.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseShift(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDay(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	messages := map[string]string{
		"shift": "{0} must be AM or PM",
		"day":   "{0} must be a valid date",
	}
	for tag, msg := range messages {
		if err := v.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		}); err != nil {
			return err
		}
	}

	return nil
}

// ValidateJobDate rejects jobs placed before today.
func ValidateJobDate(job *domain.Job, today domain.Day) error {
	if job.Date.IsZero() {
		return errors.New("Please select a date")
	}
	if job.Date < today {
		return errors.New("Job date cannot be in the past")
	}
	return nil
}
