// Package factstore appends user facts and ranks them against queries.
package factstore

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
)

// DefaultTopK is the number of facts returned when no limit is given
const DefaultTopK = 3

// RenderLimit caps the rendered fact block regardless of WithTopK
const RenderLimit = 3

type Store struct {
	repo   interfaces.FactRepository
	scorer Scorer
	topK   int
}

type Option func(*Store)

// WithScorer replaces the lexical scorer
func WithScorer(scorer Scorer) Option {
	return func(s *Store) {
		s.scorer = scorer
	}
}

// WithTopK sets the limit used by Search when topK <= 0
func WithTopK(k int) Option {
	return func(s *Store) {
		if k > 0 {
			s.topK = k
		}
	}
}

func New(repo interfaces.FactRepository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		scorer: LexicalScorer{},
		topK:   DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append durably records text as a new fact of the user
func (s *Store) Append(ctx context.Context, userID, text string, metadata map[string]string) (*model.FactEntry, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}

	entry, err := s.repo.Append(ctx, userID, &model.FactEntry{
		Text:     text,
		Metadata: metadata,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append fact", goerr.V("userID", userID))
	}
	return entry, nil
}

// Search ranks the user's facts against query. Zero-score entries are
// dropped, ties keep insertion order and at most topK entries are returned.
func (s *Store) Search(ctx context.Context, userID, query string, topK int) ([]model.ScoredFact, error) {
	if topK <= 0 {
		topK = s.topK
	}

	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list facts", goerr.V("userID", userID))
	}

	results := make([]model.ScoredFact, 0, len(entries))
	for _, entry := range entries {
		score := s.scorer.Score(query, entry.Text)
		if score <= 0 {
			continue
		}
		results = append(results, model.ScoredFact{Entry: entry, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// RenderContext formats the best matches for query as a numbered list under
// a fixed header, at most RenderLimit items. It returns an empty string when
// nothing matches.
func (s *Store) RenderContext(ctx context.Context, userID, query string) (string, error) {
	results, err := s.Search(ctx, userID, query, RenderLimit)
	if err != nil {
		return "", err
	}
	return model.RenderFacts(model.Entries(results)), nil
}
