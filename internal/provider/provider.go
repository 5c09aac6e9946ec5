// Package provider defines the inference gateway boundary: the contract the
// rest of the application uses to talk to a language-model service, plus the
// typed error every adapter maps transport failures into. Adapters live in
// internal/adapter/provider.
package provider

import "context"

// Generator is the inference gateway. Implementations send one request and
// return the raw generated text; they never retry. Retry policy belongs to
// callers that understand the semantic expectation of the response.
// Every call must respect ctx cancellation and deadlines.
type Generator interface {
	// Generate sends the prompt and returns the model's raw text.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	// Chat sends a multi-turn conversation. When opts.TargetLanguage is set,
	// a system instruction pins the response to that language.
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)

	// IsReady reports whether the named model is loaded and able to serve.
	// It must not block longer than a short bounded timeout.
	IsReady(ctx context.Context, model string) bool

	// ListModels returns the identifiers of the models currently available.
	ListModels(ctx context.Context) ([]string, error)
}

// Options are the recognized generation parameters.
type Options struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	TargetLanguage string
	Seed           int
	// JSONOnly asks the adapter to request machine-readable output where the
	// backend supports it (Ollama's format:"json", OpenAI's JSON mode).
	JSONOnly bool
}

// Role identifies a chat message sender.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn of a chat conversation.
type Message struct {
	Role    Role
	Content string
}
