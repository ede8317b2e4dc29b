package validator

import (
	"errors"
	"fmt"
)

// ErrValidation matches any ValidationErrors under errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError describes one rejected field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Single builds a one-entry ValidationErrors for checks made outside struct tags
func Single(field, message string, value interface{}, rule string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Value: value, Rule: rule}}
}
