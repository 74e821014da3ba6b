package services

import (
	"errors"

	"github.com/diewo77/go-gescom/internal/validation"
)

// Sentinel errors shared by the services. Handlers translate them to HTTP
// responses; none of them should ever take the process down.
var (
	ErrNotFound        = errors.New("not_found")
	ErrAlreadySigned   = errors.New("already_signed")
	ErrShareNotAllowed = errors.New("share_not_allowed")
	ErrNoLines         = errors.New("sales_order_has_no_lines")
	ErrProductInUse    = errors.New("product_in_use")
)

// ValidationError carries per-field violations for a rejected mutation.
// The prior state is always left untouched when it is returned.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation_failed" }

// AsValidation extracts a ValidationError when err wraps one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
