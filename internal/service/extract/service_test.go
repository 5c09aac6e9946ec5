package extract

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langtutor-backend/internal/config"
	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockGenerator struct {
	ChatFunc func(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error)

	// calls records every conversation sent, in order.
	calls [][]provider.Message
}

func (m *mockGenerator) Chat(ctx context.Context, messages []provider.Message, opts provider.Options) (string, error) {
	m.calls = append(m.calls, messages)
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages, opts)
	}
	return "", errors.New("unexpected Chat call")
}

// respondWith returns each canned response in sequence.
func respondWith(responses ...string) func(context.Context, []provider.Message, provider.Options) (string, error) {
	i := 0
	return func(context.Context, []provider.Message, provider.Options) (string, error) {
		if i >= len(responses) {
			return "", errors.New("no more canned responses")
		}
		r := responses[i]
		i++
		return r, nil
	}
}

func newTestService(gen *mockGenerator) *Service {
	return NewService(slog.Default(), gen, config.LLMConfig{
		Model:       "test-model",
		Temperature: 0.2,
		MaxTokens:   512,
	})
}

const goodEnrichment = `{
	"translation": "hello",
	"part_of_speech": "noun",
	"example_sentence": "Bonjour, comment allez-vous ?",
	"pronunciation_hint": "bon-ZHOOR",
	"gender": "",
	"notes": "Standard daytime greeting"
}`

// ===========================================================================
// ExtractEnrichment
// ===========================================================================

func TestExtractEnrichment_WellFormedFirstTry(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{ChatFunc: respondWith(goodEnrichment)}
	svc := newTestService(gen)

	got, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "bonjour", got.Word)
	assert.Equal(t, "French", got.Language)
	assert.Equal(t, "hello", got.Translation)
	require.NotNil(t, got.PartOfSpeech)
	assert.Equal(t, domain.PartOfSpeechNoun, *got.PartOfSpeech)
	assert.False(t, got.POSFlagged)
	assert.Equal(t, "Bonjour, comment allez-vous ?", got.ExampleSentence)
	assert.Equal(t, "bon-ZHOOR", got.Pronunciation)
	assert.Equal(t, "Standard daytime greeting", got.Notes)

	// Well-formed output means zero corrective retries.
	assert.Len(t, gen.calls, 1)
}

func TestExtractEnrichment_MarkdownFences(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{ChatFunc: respondWith(
		"Here you go:\n```json\n" + goodEnrichment + "\n```\nHope that helps!",
	)}
	svc := newTestService(gen)

	got, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Translation)
	assert.Len(t, gen.calls, 1)
}

func TestExtractEnrichment_UnknownPOSFlagged(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{ChatFunc: respondWith(
		`{"translation": "hello", "part_of_speech": "greeting particle"}`,
	)}
	svc := newTestService(gen)

	got, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")
	require.NoError(t, err)

	assert.Nil(t, got.PartOfSpeech)
	assert.True(t, got.POSFlagged)
	assert.Equal(t, "greeting particle", got.RawPartOfSpeech)
	// A flagged POS is not a validation failure.
	assert.Len(t, gen.calls, 1)
}

func TestExtractEnrichment_MissingTranslation_OneRetryThenError(t *testing.T) {
	t.Parallel()

	bad := `{"translation": "", "part_of_speech": "noun"}`
	gen := &mockGenerator{ChatFunc: respondWith(bad, bad)}
	svc := newTestService(gen)

	_, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")
	require.Error(t, err)

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, domain.ExtractionIncomplete, extErr.Reason)
	assert.Equal(t, "translation", extErr.Field)

	// Exactly one corrective retry, no more.
	require.Len(t, gen.calls, 2)

	// The retry conversation echoes the bad output as an assistant turn and
	// ends with a correction request.
	retry := gen.calls[1]
	require.Greater(t, len(retry), len(gen.calls[0]))
	assert.Equal(t, provider.RoleAssistant, retry[len(retry)-2].Role)
	assert.Equal(t, bad, retry[len(retry)-2].Content)
	assert.Equal(t, provider.RoleUser, retry[len(retry)-1].Role)
	assert.Contains(t, retry[len(retry)-1].Content, "corrected JSON")
}

func TestExtractEnrichment_RetrySucceeds(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{ChatFunc: respondWith("not json at all", goodEnrichment)}
	svc := newTestService(gen)

	got, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Translation)
	assert.Len(t, gen.calls, 2)
}

func TestExtractEnrichment_MalformedTwice(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{ChatFunc: respondWith(`{"translation": `, `still broken {`)}
	svc := newTestService(gen)

	_, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, domain.ExtractionMalformed, extErr.Reason)
	assert.Equal(t, "parse", extErr.Stage)
	assert.Len(t, gen.calls, 2)
}

func TestExtractEnrichment_GatewayFailureFirstCall(t *testing.T) {
	t.Parallel()

	gwErr := provider.NewGatewayError("ollama", errors.New("connection refused"))
	gen := &mockGenerator{
		ChatFunc: func(context.Context, []provider.Message, provider.Options) (string, error) {
			return "", gwErr
		},
	}
	svc := newTestService(gen)

	_, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, domain.ExtractionGatewayUnreachable, extErr.Reason)
	assert.ErrorIs(t, err, gwErr)

	// Gateway failures are not retried.
	assert.Len(t, gen.calls, 1)
}

func TestExtractEnrichment_GatewayFailureDuringRetry(t *testing.T) {
	t.Parallel()

	gwErr := provider.NewGatewayError("ollama", errors.New("connection refused"))
	first := true
	gen := &mockGenerator{
		ChatFunc: func(context.Context, []provider.Message, provider.Options) (string, error) {
			if first {
				first = false
				return "garbage", nil
			}
			return "", gwErr
		},
	}
	svc := newTestService(gen)

	_, err := svc.ExtractEnrichment(context.Background(), "bonjour", "French")

	var extErr *domain.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, domain.ExtractionGatewayUnreachable, extErr.Reason)
	assert.ErrorIs(t, err, gwErr)
}

func TestExtractEnrichment_InputValidation(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	svc := newTestService(gen)

	_, err := svc.ExtractEnrichment(context.Background(), "  ", "French")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ExtractEnrichment(context.Background(), "bonjour", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, gen.calls, "validation failures must not hit the gateway")
}
