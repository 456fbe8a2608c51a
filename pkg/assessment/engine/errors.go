package engine

import "errors"

// Shared error taxonomy for the form filling flow. The server-side service and
// the client-side filling session both map onto these values so callers can
// branch with errors.Is.
var (
	ErrLinkNotFound     = errors.New("assessment link not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAlreadySubmitted = errors.New("assessment link already submitted")
	ErrConsentRequired  = errors.New("consent confirmation required")
	ErrValidationFailed = errors.New("answer validation failed")
)
