package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// submitted values of these fields are never echoed back in errors
var sensitiveFields = map[string]bool{
	"password": true,
}

// Validator wraps validator/v10 with the account rules registered
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report failures by their JSON key, not the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{validate: validate}
	v.registerRules()
	return v
}

// Validate runs struct validation and returns ValidationErrors or nil
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		var value interface{}
		if !sensitiveFields[fe.Field()] {
			value = fe.Value()
		}
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   value,
			Rule:    fe.Tag(),
		})
	}
	return out
}

func (v *Validator) registerRules() {
	// YYYY-MM-DD calendar date
	v.validate.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})

	v.validate.RegisterValidation("professor_title", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.TitleAssistant, models.TitleAssociate, models.TitleFull:
			return true
		}
		return false
	})
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	case "professor_title":
		return "must be Assistant, Associate, or Full"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", fe.Tag())
	}
}
