package rulesource

import "errors"

var (
	ErrSpecNotFound       = errors.New("rule spec not found")
	ErrInvalidKey         = errors.New("invalid rule spec key")
	ErrInvalidConfig      = errors.New("invalid rule source configuration")
	ErrFailedToLoadConfig = errors.New("failed to load storage configuration")
	ErrSourceUnavailable  = errors.New("rule source unavailable")
)
