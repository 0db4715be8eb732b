package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/aisurvival/internal/apperr"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-profile",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"age":  map[string]any{"type": "integer", "minimum": 0},
				"tier": map[string]any{"type": "string", "enum": []any{"safe", "caution", "danger"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"name":"Aiko","age":10,"tier":"safe"}`)
	err := ValidateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"name":"Ben","age":8}`)
	err := ValidateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"name":"Chie"}`)
	err := ValidateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrSchemaViolation
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrSchemaViolation, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"name":"Daiki","age":"ten"}`)
	err := ValidateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrSchemaViolation
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrSchemaViolation, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"name":"Emi","age":9,"tier":"doomed"}`)
	err := ValidateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrSchemaViolation
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrSchemaViolation, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := ValidateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrSchemaViolation
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrSchemaViolation, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := ValidateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := ValidateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name:        "test-nested",
		Description: "Nested test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"respondent": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"answers": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"respondent", "answers"},
		},
	}

	valid := json.RawMessage(`{"respondent":{"name":"Aiko"},"answers":[90,85,92]}`)
	if err := ValidateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"respondent":{"name":"Aiko"},"answers":["not","ints"]}`)
	if err := ValidateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestValidateResponse_MatchesSentinel(t *testing.T) {
	err := ValidateResponse(testSchema(), json.RawMessage(`{"name":"Emi","age":-1}`))
	if !errors.Is(err, apperr.ErrSchemaViolation) {
		t.Fatalf("expected apperr.ErrSchemaViolation, got: %v", err)
	}
	if errors.Is(err, apperr.ErrService) {
		t.Fatal("schema violation must not be classified as a service error")
	}
}

func TestDecodeStructured(t *testing.T) {
	var out struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
		Tier string `json:"tier"`
	}
	if err := DecodeStructured(testSchema(), json.RawMessage(`{"name":"Aiko","age":12,"tier":"caution"}`), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != "Aiko" || out.Age != 12 || out.Tier != "caution" {
		t.Fatalf("unexpected decode result: %+v", out)
	}

	err := DecodeStructured(testSchema(), json.RawMessage(`{"name":"Aiko","age":12,"tier":"fine"}`), &out)
	var sv *ErrSchemaViolation
	if !errors.As(err, &sv) {
		t.Fatalf("expected ErrSchemaViolation, got: %v", err)
	}
	if sv.Schema != "test-profile" {
		t.Fatalf("violation schema = %q, want test-profile", sv.Schema)
	}
}
