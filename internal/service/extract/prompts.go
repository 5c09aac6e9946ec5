package extract

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/heartmarshall/langtutor-backend/internal/domain"
	"github.com/heartmarshall/langtutor-backend/internal/provider"
)

const jsonOnlySystem = "Always respond with valid JSON only, no markdown, no explanation."

// wordCategories steer flashcard generation away from repeating the same
// handful of beginner words on every call.
var wordCategories = []string{
	"food", "animals", "colors", "family", "nature", "emotions",
	"daily activities", "clothing", "weather", "body parts",
	"transportation", "professions",
}

func enrichmentMessages(word, language string) []provider.Message {
	prompt := fmt.Sprintf(`Provide information about this %s word: %q

Return ONLY a JSON object (no markdown blocks) with this exact format:
{
  "translation": "English translation",
  "part_of_speech": "noun/verb/adjective/adverb/etc",
  "example_sentence": "Example sentence in %s",
  "pronunciation_hint": "Pronunciation guide if helpful",
  "gender": "masculine/feminine/neuter (only for languages with grammatical gender)",
  "notes": "Any useful notes about usage or context"
}

If the word doesn't exist or is misspelled, still provide your best attempt.`, language, word, language)

	return []provider.Message{
		{Role: provider.RoleSystem, Content: "You are a language teacher providing vocabulary information. " + jsonOnlySystem},
		{Role: provider.RoleUser, Content: prompt},
	}
}

// flashcardMessages builds the generation conversation plus the seed used for
// sampling variety. Category rotation and the seed keep repeated calls from
// converging on the same words.
func flashcardMessages(language string, count int) ([]provider.Message, int) {
	categories := make([]string, len(wordCategories))
	copy(categories, wordCategories)
	rand.Shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})
	selected := categories[:3]
	seed := 1000 + rand.IntN(9000)

	prompt := fmt.Sprintf(`Generate exactly %d %s vocabulary words for beginners.

Focus on these categories: %s
Seed for variety: %d
Current time: %d

IMPORTANT: Generate DIFFERENT words each time. Avoid the most basic words like hello, house, water.

Return ONLY a JSON array (no markdown blocks) with this exact format:
[
  {"word": "%s word", "part_of_speech": "noun/verb/adjective", "translation": "English translation"}
]

For verbs: use infinitive form in %s and "to ..." in English.
Vary your selections - include less common but still useful beginner words.`,
		count, language, strings.Join(selected, ", "), seed, time.Now().Unix(), language, language)

	return []provider.Message{
		{Role: provider.RoleSystem, Content: "You are a language teacher creating vocabulary flashcards. " + jsonOnlySystem},
		{Role: provider.RoleUser, Content: prompt},
	}, seed
}

// correctionPrompt asks the model to fix its previous reply. The bad output
// itself is already in the conversation as the assistant turn.
func correctionPrompt(perr *domain.ExtractionError) string {
	var problem string
	switch perr.Reason {
	case domain.ExtractionMalformed:
		problem = "Your previous response was not valid JSON."
	case domain.ExtractionIncomplete:
		problem = "Your previous response was missing required data"
		if perr.Field != "" {
			problem += fmt.Sprintf(" (field %q)", perr.Field)
		}
		problem += "."
	case domain.ExtractionCountMismatch:
		problem = "Your previous response did not contain the requested number of items."
	default:
		problem = "Your previous response could not be processed."
	}

	return problem + " Respond again with ONLY the corrected JSON in the exact format requested. No markdown, no explanation."
}
