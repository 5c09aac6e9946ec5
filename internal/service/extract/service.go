// Package extract turns free-form model output into validated structures.
// Every extraction follows the same flow: prompt the gateway, locate the JSON
// payload in the reply, validate it, and on failure send exactly one
// corrective follow-up that echoes the bad output before giving up.
package extract

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

type generator interface {
	Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error)
}

// Service extracts structured data from model output.
type Service struct {
	log         *slog.Logger
	gen         generator
	model       string
	temperature float64
	maxTokens   int
}

// NewService creates a new extraction service using the configured model.
func NewService(log *slog.Logger, gen generator, cfg config.LLMConfig) *Service {
	return &Service{
		log:         log.With("service", "extract"),
		gen:         gen,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// run executes the shared extraction flow. parse inspects one located payload
// and returns nil on success; its side effects carry the result out. On a
// parse failure the conversation is extended with the model's own bad output
// plus a correction request and sent once more. The second failure wins.
func (s *Service) run(ctx context.Context, kind string, messages []provider.Message, opts provider.Options, parse func(payload string) *domain.ExtractionError) error {
	raw, err := s.gen.Chat(ctx, messages, opts)
	if err != nil {
		return domain.NewExtractionError(domain.ExtractionGatewayUnreachable, "gateway", "", err)
	}

	perr := parse(locateJSON(raw))
	if perr == nil {
		return nil
	}

	s.log.WarnContext(ctx, "extraction failed, sending corrective retry",
		slog.String("kind", kind),
		slog.String("reason", string(perr.Reason)),
		slog.String("stage", perr.Stage),
	)

	retry := append(append([]provider.Message{}, messages...),
		provider.Message{Role: provider.RoleAssistant, Content: raw},
		provider.Message{Role: provider.RoleUser, Content: correctionPrompt(perr)},
	)

	raw, err = s.gen.Chat(ctx, retry, opts)
	if err != nil {
		return domain.NewExtractionError(domain.ExtractionGatewayUnreachable, "gateway", "", err)
	}

	if perr := parse(locateJSON(raw)); perr != nil {
		return perr
	}
	return nil
}

func (s *Service) options() provider.Options {
	return provider.Options{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
}
