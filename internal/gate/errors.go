package gate

import "errors"

// Sentinel errors returned by Gate.Authorize.
var (
	ErrPermission      = errors.New("permission_denied")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)
