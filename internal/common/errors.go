package common

import "errors"

// Error kinds shared by the adapter, the services and the transport layers.
// Wrap with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSourceTimeout     = errors.New("source timeout")
	ErrSourceRateLimited = errors.New("source rate limited")
	ErrNotFound          = errors.New("not found")
)

// ErrorKind returns a stable label for err, used in logs and fallback counters.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrSourceRateLimited):
		return "source_rate_limited"
	case errors.Is(err, ErrSourceTimeout):
		return "source_timeout"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
