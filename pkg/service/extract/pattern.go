// Package extract finds personal information in utterances with fixed
// phrase patterns. It is approximate by nature: no parsing, only substring
// matches on case-folded text.
package extract

import (
	"strings"
	"unicode"

	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

// Patterns configures the phrases an extractor looks for. All phrases are
// compared case-insensitively.
type Patterns struct {
	// Disclosures mark an utterance as worth remembering verbatim
	Disclosures []string
	// Introduction precedes the user's name
	Introduction string
	// QuestionMarkers suppress name extraction, e.g. "как меня зовут?"
	QuestionMarkers []string
	// Preference precedes an interest
	Preference string
}

// DefaultPatterns returns the built-in Russian patterns
func DefaultPatterns() Patterns {
	return Patterns{
		Disclosures:     []string{"у меня есть", "я люблю", "меня зовут", "мой адрес"},
		Introduction:    "меня зовут",
		QuestionMarkers: []string{"как", "?"},
		Preference:      "я люблю",
	}
}

type Pattern struct {
	patterns Patterns
}

var _ interfaces.Extractor = &Pattern{}

func New(patterns Patterns) *Pattern {
	return &Pattern{patterns: normalizePatterns(patterns)}
}

func normalizePatterns(p Patterns) Patterns {
	fold := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	foldAll := func(list []string) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			if s = fold(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	return Patterns{
		Disclosures:     foldAll(p.Disclosures),
		Introduction:    fold(p.Introduction),
		QuestionMarkers: foldAll(p.QuestionMarkers),
		Preference:      fold(p.Preference),
	}
}

// CandidateFacts returns the whole utterance when it contains a disclosure
// phrase. Each utterance yields at most one fact.
func (x *Pattern) CandidateFacts(utterance string) []string {
	text := strings.TrimSpace(utterance)
	folded := strings.ToLower(text)
	for _, phrase := range x.patterns.Disclosures {
		if strings.Contains(folded, phrase) {
			return []string{text}
		}
	}
	return nil
}

// Name returns the first word after the introduction phrase, trimmed of
// punctuation and capitalized. Questions never yield a name.
func (x *Pattern) Name(utterance string) (string, bool) {
	if x.patterns.Introduction == "" {
		return "", false
	}

	folded := strings.ToLower(utterance)
	for _, marker := range x.patterns.QuestionMarkers {
		if strings.Contains(folded, marker) {
			return "", false
		}
	}

	rest, ok := after(folded, x.patterns.Introduction)
	if !ok {
		return "", false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}

	name := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
	if name == "" {
		return "", false
	}
	return capitalize(name), true
}

// Interests returns what follows the preference phrase, up to the end of the
// clause
func (x *Pattern) Interests(utterance string) []string {
	if x.patterns.Preference == "" {
		return nil
	}

	rest, ok := after(strings.ToLower(utterance), x.patterns.Preference)
	if !ok {
		return nil
	}

	if idx := strings.IndexAny(rest, ".,!?;"); idx >= 0 {
		rest = rest[:idx]
	}
	interest := strings.TrimSpace(rest)
	if interest == "" {
		return nil
	}
	return []string{interest}
}

// after returns the text following the first occurrence of phrase
func after(text, phrase string) (string, bool) {
	idx := strings.Index(text, phrase)
	if idx < 0 {
		return "", false
	}
	return text[idx+len(phrase):], true
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
