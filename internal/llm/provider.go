package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

// Provider is the boundary to the external generation service.
// Every call is a single synchronous request/response; providers never retry.
type Provider interface {
	// Generate sends one request to the model. When req.Schema is set the
	// provider asks for structured output and Response.Content is JSON that
	// has been validated against the schema. Otherwise Content is the raw
	// text returned by the model.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction.
	System string

	// Messages is the conversation. The diagnostic stages always send a
	// single user message, optionally carrying images.
	Messages []Message

	// Schema, when set, constrains the response to a JSON document.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. It is always sent, so zero asks for
	// the most deterministic sampling the provider offers.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Images are attached after Content for vision-capable models.
	Images []Image
}

// Image is an inline raster attached to a message.
type Image struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL, the form OpenAI-compatible APIs
// accept for image_url parts.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool/schema name sent to the provider).
	// Kebab-case, e.g. "level-classification".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON object for structured requests, or the
	// raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as a string. For unstructured requests this is the
// model's text verbatim.
func (r *Response) Text() string {
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
