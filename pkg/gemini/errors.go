package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuotaExceeded marks a generation declined for rate/usage limits. It is
// surfaced to the user as a distinct message and never retried automatically.
var ErrQuotaExceeded = errors.New("quota exceeded")

// quotaError wraps the upstream detail while staying matchable via errors.Is.
type quotaError struct {
	detail string
}

func (e *quotaError) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.detail)
}

func (e *quotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// classifyError decides whether an API failure is a quota rejection. The
// structured signals (HTTP 429, RESOURCE_EXHAUSTED status) are authoritative;
// message inspection is only the fallback for proxies that rewrite them.
func classifyError(httpStatus int, apiStatus, message string) error {
	if httpStatus == 429 || apiStatus == "RESOURCE_EXHAUSTED" {
		return &quotaError{detail: message}
	}
	lower := strings.ToLower(message)
	if strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") {
		return &quotaError{detail: message}
	}
	return fmt.Errorf("generation failed, status %d: %s", httpStatus, message)
}

// IsQuota reports whether err represents a quota rejection. The structured
// sentinel is authoritative; message inspection covers collaborators that
// only surface the upstream text.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit")
}
