package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid                 = errors.New("invalid")
	ErrUpstreamUnavailable     = errors.New("translation service unavailable")
	ErrUpstreamStatus          = errors.New("translation service error")
	ErrInvalidUpstreamResponse = errors.New("invalid translation service response")
	ErrPersist                 = errors.New("persist translation failed")
)

// UpstreamStatusError carries a non-success response from the inference service.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("translation service returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
