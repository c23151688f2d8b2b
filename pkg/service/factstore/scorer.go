package factstore

import "strings"

// Scorer rates how relevant a fact text is to a query. Zero means unrelated.
type Scorer interface {
	Score(query, text string) int
}

// LexicalScorer counts distinct query terms that occur as substrings of the
// text. Both sides are case-folded and the query is split on whitespace.
type LexicalScorer struct{}

func (LexicalScorer) Score(query, text string) int {
	folded := strings.ToLower(text)
	score := 0
	for _, term := range queryTerms(query) {
		if strings.Contains(folded, term) {
			score++
		}
	}
	return score
}

func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}
