package ollama

import (
	"fmt"

	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

// Wire types for the Ollama HTTP API.

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
	Seed        int     `json:"seed,omitempty"`
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
	Format   string       `json:"format,omitempty"`
	Options  apiOptions   `json:"options,omitempty"`
}

type chatResponse struct {
	Message   apiMessage `json:"message"`
	Done      bool       `json:"done"`
	EvalCount int        `json:"eval_count"`
}

type generateRequest struct {
	Model   string     `json:"model"`
	Prompt  string     `json:"prompt"`
	Stream  bool       `json:"stream"`
	Options apiOptions `json:"options,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// toAPIMessages converts provider messages, prepending the target-language
// system instruction when set.
func toAPIMessages(messages []provider.Message, targetLanguage string) []apiMessage {
	out := make([]apiMessage, 0, len(messages)+1)
	if targetLanguage != "" {
		out = append(out, apiMessage{
			Role:    string(provider.RoleSystem),
			Content: fmt.Sprintf("You must respond only in %s. Never use any other language regardless of the input language.", targetLanguage),
		})
	}
	for _, m := range messages {
		out = append(out, apiMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func toAPIOptions(opts provider.Options) apiOptions {
	return apiOptions{
		Temperature: opts.Temperature,
		NumPredict:  opts.MaxTokens,
		Seed:        opts.Seed,
	}
}
