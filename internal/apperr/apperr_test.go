package apperr

import (
	"errors"
	"fmt"
	"testing"
)

type wrapped struct{ target error }

func (w *wrapped) Error() string        { return "wrapped" }
func (w *wrapped) Is(target error) bool { return target == w.target }

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"extraction", fmt.Errorf("load: %w", ErrExtraction), "extraction"},
		{"schema", &wrapped{target: ErrSchemaViolation}, "schema_violation"},
		{"service", fmt.Errorf("classify: %w", &wrapped{target: ErrService}), "service"},
		{"configuration", ErrConfiguration, "configuration"},
		{"other", errors.New("boom"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}
