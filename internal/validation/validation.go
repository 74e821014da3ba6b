package validation

import (
	"net/mail"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// OneOf checks membership in an allowed value set.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// SIRET validates a French SIRET: exactly 14 numeric characters.
// Empty values pass; use Required separately when the field is mandatory.
func SIRET(field, value string, v Violations) {
	if value == "" {
		return
	}
	if len(value) != 14 {
		v[field] = "must_be_14_digits"
		return
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			v[field] = "must_be_14_digits"
			return
		}
	}
}

// Email validates format when present; empty values pass.
func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}
