package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
	"unicode"

	"swdb/internal/config"
	"swdb/internal/httpx"
)

// Mode selects presence semantics: create requires required fields, update
// skips absent fields entirely (partial update).
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Kind is the declared value type of a field
type Kind int

const (
	KindString Kind = iota
	KindDate
	KindURL
	KindStringArray
	KindURLArray
	KindIDRef
)

// Rule declares the constraints for one field. Rules are applied in order:
// presence, type, length bounds, character class, enum membership.
type Rule struct {
	Field    string
	Required bool
	Kind     Kind
	Min      int
	Max      int
	ASCII    bool
	// Enum selects the authoritative value list from the config snapshot.
	// For array kinds it constrains each element.
	Enum func(e *config.Enums) []string
}

// Validate applies the ruleset to a request body and returns nil when the
// body is acceptable, or the full list of per-field violations. Fields not
// covered by any rule are ignored.
func Validate(rules []Rule, body map[string]interface{}, mode Mode, enums *config.Enums) []httpx.Violation {
	var violations []httpx.Violation

	for _, rule := range rules {
		raw, present := body[rule.Field]
		if !present || raw == nil {
			if rule.Required && mode == ModeCreate {
				violations = append(violations, httpx.Violation{
					Field:   rule.Field,
					Message: fmt.Sprintf("%s is required", rule.Field),
				})
			}
			continue
		}

		if v := checkValue(rule, raw, enums); v != nil {
			violations = append(violations, *v)
		}
	}

	return violations
}

func checkValue(rule Rule, raw interface{}, enums *config.Enums) *httpx.Violation {
	switch rule.Kind {
	case KindString, KindDate, KindURL:
		s, ok := raw.(string)
		if !ok {
			return violationf(rule.Field, "%s must be a string", rule.Field)
		}
		return checkString(rule, s, enums)

	case KindStringArray, KindURLArray:
		items, ok := raw.([]interface{})
		if !ok {
			return violationf(rule.Field, "%s must be an array of strings", rule.Field)
		}
		elem := rule
		if rule.Kind == KindURLArray {
			elem.Kind = KindURL
		} else {
			elem.Kind = KindString
		}
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return violationf(rule.Field, "%s[%d] must be a string", rule.Field, i)
			}
			if v := checkString(elem, s, enums); v != nil {
				v.Message = fmt.Sprintf("%s[%d]: %s", rule.Field, i, v.Message)
				return v
			}
		}
		return nil

	case KindIDRef:
		switch id := raw.(type) {
		case float64:
			if id <= 0 || id != float64(int64(id)) {
				return violationf(rule.Field, "%s must be a positive record id", rule.Field)
			}
		case string:
			n, err := strconv.Atoi(id)
			if err != nil || n <= 0 {
				return violationf(rule.Field, "%s must be a positive record id", rule.Field)
			}
		default:
			return violationf(rule.Field, "%s must be a record id", rule.Field)
		}
		return nil
	}

	return nil
}

func checkString(rule Rule, s string, enums *config.Enums) *httpx.Violation {
	if rule.Kind == KindDate {
		if !isDate(s) {
			return violationf(rule.Field, "%s must be a date", rule.Field)
		}
		return nil
	}

	if rule.Kind == KindURL {
		if !isURL(s) {
			return violationf(rule.Field, "%s must be a valid URL", rule.Field)
		}
		if rule.Max > 0 && len(s) > rule.Max {
			return violationf(rule.Field, "%s must be at most %d characters", rule.Field, rule.Max)
		}
		return nil
	}

	if rule.Min > 0 && len(s) < rule.Min {
		return violationf(rule.Field, "%s must be at least %d characters", rule.Field, rule.Min)
	}
	if rule.Max > 0 && len(s) > rule.Max {
		return violationf(rule.Field, "%s must be at most %d characters", rule.Field, rule.Max)
	}

	if rule.ASCII && !isASCII(s) {
		return violationf(rule.Field, "%s must contain only ASCII characters", rule.Field)
	}

	if rule.Enum != nil {
		allowed := rule.Enum(enums)
		if !contains(allowed, s) {
			return violationf(rule.Field, "%s must be one of %v", rule.Field, allowed)
		}
	}

	return nil
}

func violationf(field, format string, args ...interface{}) *httpx.Violation {
	return &httpx.Violation{Field: field, Message: fmt.Sprintf(format, args...)}
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isDate(s string) bool {
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	return false
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
