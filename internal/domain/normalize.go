package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldDiacritics removes combining marks: "café" becomes "cafe".
// Input that fails to transform is returned unchanged.
func FoldDiacritics(text string) string {
	out, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		return text
	}
	return out
}

// AnswerPolicy controls how practice answers are normalized before
// comparison. Trim and case folding always apply; diacritic folding and the
// "to eat"/"eat" infinitive tolerance are configurable.
type AnswerPolicy struct {
	FoldDiacritics   bool
	AcceptInfinitive bool
}

// NormalizeAnswer applies the policy's normalization, shared by user answers
// and accepted translations.
func (p AnswerPolicy) NormalizeAnswer(text string) string {
	text = NormalizeText(text)
	if p.FoldDiacritics {
		text = FoldDiacritics(text)
	}
	return text
}

// Match reports whether the user's answer matches the accepted translation
// under this policy. With AcceptInfinitive the English "to " prefix is
// optional in either direction.
func (p AnswerPolicy) Match(answer, accepted string) bool {
	a := p.NormalizeAnswer(answer)
	b := p.NormalizeAnswer(accepted)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if p.AcceptInfinitive {
		if strings.TrimPrefix(a, "to ") == b || a == strings.TrimPrefix(b, "to ") {
			return true
		}
	}
	return false
}
