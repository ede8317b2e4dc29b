package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the ISO-8601 calendar date format used on the wire
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a date column value
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a date column as YYYY-MM-DD, or nil when unset
func FormatDate(d datatypes.Date) interface{} {
	t := time.Time(d)
	if t.IsZero() {
		return nil
	}
	return t.Format(DateLayout)
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func derefUint(u *uint) interface{} {
	if u == nil {
		return nil
	}
	return *u
}
