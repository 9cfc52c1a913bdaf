package interfaces

import (
	"context"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ContentRequest is a provider-agnostic text generation request.
// Callers supply a hard MaxTokens ceiling and a temperature appropriate to
// the step: low (0.1-0.3) for structured-JSON steps, ~0.4 for file bodies.
type ContentRequest struct {
	Messages          []Message
	Model             string
	Temperature       float32
	MaxTokens         int
	SystemInstruction string
}

// ContentResponse is a provider-agnostic text generation response
type ContentResponse struct {
	Text     string
	Provider string
	Model    string
}

// TextClient abstracts over the interchangeable AI backends (Claude SDK and
// Gemini API) behind one return shape so pipeline steps never branch on the
// backend in use.
type TextClient interface {
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)
	Close() error
}
