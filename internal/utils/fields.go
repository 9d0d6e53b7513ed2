package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDate parses a wire-level date value, accepting yyyy-mm-dd or RFC3339
func ParseDate(s string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date value %q", s)
}

// ToID converts a decoded JSON value (number or numeric string) to a record id
func ToID(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid record id %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid record id %v", raw)
	}
}
