// Package apperr defines the error taxonomy shared by the diagnostic pipeline.
//
// Concrete error types live with the package that produces them (refdoc, llm,
// config) and match one of the sentinels below through errors.Is, so callers
// can branch on the kind of failure without importing every producer.
package apperr

import "errors"

var (
	// ErrExtraction: the reference document is unreadable or text/image
	// extraction failed.
	ErrExtraction = errors.New("reference extraction failed")

	// ErrSchemaViolation: a structured generation response is outside its
	// declared schema.
	ErrSchemaViolation = errors.New("structured output violates schema")

	// ErrService: the generation call itself failed (network, auth, rate
	// limit, malformed response).
	ErrService = errors.New("generation service error")

	// ErrConfiguration: credentials or resource paths are missing or invalid.
	ErrConfiguration = errors.New("configuration error")
)

// Kind returns a short stable label for err, suitable for logs and stored
// run records.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExtraction):
		return "extraction"
	case errors.Is(err, ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, ErrService):
		return "service"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "unknown"
	}
}
