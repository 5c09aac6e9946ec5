// Package practice implements flashcard practice sessions: a small state
// machine over a fixed item list, scored answers, and review write-back for
// sessions built from the stored vocabulary.
package practice

import (
	"github.com/heartmarshall/langtutor-backend/internal/domain"
)

// Item is what a practicing user is shown: the word to answer, never the
// answer itself.
type Item struct {
	Position     int // zero-based
	Total        int
	Word         string
	Language     string
	PartOfSpeech *domain.PartOfSpeech
}

// ItemOutcome is one answered (or skipped) item in a finished session.
type ItemOutcome struct {
	Word    string
	Answer  string
	Outcome domain.Outcome
}

// Result summarizes a completed session. Score is correct answers over total
// items, in [0, 1].
type Result struct {
	Language string
	Outcomes []ItemOutcome
	Correct  int
	Total    int
	Score    float64
}

// sessionItem carries the hidden answer set alongside the public item data.
type sessionItem struct {
	word         string
	partOfSpeech *domain.PartOfSpeech
	accepted     []string
	answer       string
	outcome      domain.Outcome
}

// Session is a single practice run. Intended for one practicing user at a
// time; it is not safe for concurrent use.
type Session struct {
	language    string
	state       domain.SessionState
	items       []sessionItem
	pos         int
	policy      domain.AnswerPolicy
	storeBacked bool
}

func newSession(language string, items []sessionItem, policy domain.AnswerPolicy, storeBacked bool) *Session {
	for i := range items {
		items[i].outcome = domain.OutcomeUnanswered
	}
	return &Session{
		language:    language,
		state:       domain.SessionStateInProgress,
		items:       items,
		policy:      policy,
		storeBacked: storeBacked,
	}
}

// State returns the session state.
func (s *Session) State() domain.SessionState {
	return s.state
}

// CurrentItem returns the item awaiting an answer.
// Only valid while the session is in progress.
func (s *Session) CurrentItem() (Item, error) {
	if s.state != domain.SessionStateInProgress {
		return Item{}, domain.ErrInvalidSessionState
	}

	it := s.items[s.pos]
	return Item{
		Position:     s.pos,
		Total:        len(s.items),
		Word:         it.word,
		Language:     s.language,
		PartOfSpeech: it.partOfSpeech,
	}, nil
}

// submit grades the answer against the accepted set, records the outcome, and
// advances. The last item completes the session. The caller (Manager) handles
// review write-back before invoking submit.
func (s *Session) submit(userText string) (bool, error) {
	if s.state != domain.SessionStateInProgress {
		return false, domain.ErrInvalidSessionState
	}

	it := &s.items[s.pos]
	it.answer = userText
	if s.matches(userText, it.accepted) {
		it.outcome = domain.OutcomeCorrect
	} else {
		it.outcome = domain.OutcomeIncorrect
	}

	s.pos++
	if s.pos == len(s.items) {
		s.state = domain.SessionStateCompleted
	}

	return it.outcome == domain.OutcomeCorrect, nil
}

func (s *Session) matches(userText string, accepted []string) bool {
	for _, a := range accepted {
		if s.policy.Match(userText, a) {
			return true
		}
	}
	return false
}

// Result returns the ordered outcomes and the score.
// Only valid once the session is completed.
func (s *Session) Result() (Result, error) {
	if s.state != domain.SessionStateCompleted {
		return Result{}, domain.ErrInvalidSessionState
	}

	r := Result{
		Language: s.language,
		Outcomes: make([]ItemOutcome, len(s.items)),
		Total:    len(s.items),
	}
	for i, it := range s.items {
		r.Outcomes[i] = ItemOutcome{Word: it.word, Answer: it.answer, Outcome: it.outcome}
		if it.outcome == domain.OutcomeCorrect {
			r.Correct++
		}
	}
	if r.Total > 0 {
		r.Score = float64(r.Correct) / float64(r.Total)
	}

	return r, nil
}
