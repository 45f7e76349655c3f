package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func RequiredID(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "required"
	}
}

// PositiveAmount rejects absent, zero and negative amounts alike. A zero price
// is treated the same as a missing one (matching the API contract for service
// creation).
func PositiveAmount(field string, val *float64, v Violations) {
	if val == nil || *val <= 0 {
		v[field] = "must_be_positive"
	}
}
