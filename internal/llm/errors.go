package llm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/aisurvival/internal/apperr"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error        { return e.Err }
func (e *ErrRateLimit) Is(target error) bool { return target == apperr.ErrService }

// ErrAuth indicates the provider rejected the credentials (401/403).
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM provider rejected credentials: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error        { return e.Err }
func (e *ErrAuth) Is(target error) bool { return target == apperr.ErrService }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error        { return e.Err }
func (e *ErrProviderUnavailable) Is(target error) bool { return target == apperr.ErrService }

// ErrMalformedResponse indicates the provider answered but the payload had
// no usable content (no choices, no text block).
type ErrMalformedResponse struct {
	Err error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed LLM response: %v", e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error        { return e.Err }
func (e *ErrMalformedResponse) Is(target error) bool { return target == apperr.ErrService }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

func (e *ErrMaxTokensExceeded) Is(target error) bool { return target == apperr.ErrService }

// ErrSchemaViolation indicates a structured response does not conform to the
// schema it was requested with. The value is rejected, never coerced.
type ErrSchemaViolation struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("response violates schema %q: %v", e.Schema, e.Err)
}

func (e *ErrSchemaViolation) Unwrap() error        { return e.Err }
func (e *ErrSchemaViolation) Is(target error) bool { return target == apperr.ErrSchemaViolation }
