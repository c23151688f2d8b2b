package usecase

import (
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
	"github.com/secmon-lab/wayfinder/pkg/service/extract"
	"github.com/secmon-lab/wayfinder/pkg/service/factstore"
	"github.com/secmon-lab/wayfinder/pkg/service/generator"
	"github.com/secmon-lab/wayfinder/pkg/service/situation"
	"github.com/secmon-lab/wayfinder/pkg/service/speech"
)

type UseCases struct {
	repo       interfaces.Repository
	classifier *affect.Classifier
	extractor  interfaces.Extractor
	resolver   *situation.Resolver
	generator  interfaces.Generator
	speech     *speech.Service
	topK       int

	Dialog  *DialogUseCase
	Profile *ProfileUseCase
}

type Option func(*UseCases)

// WithClassifier replaces the built-in affect rule table
func WithClassifier(c *affect.Classifier) Option {
	return func(uc *UseCases) {
		uc.classifier = c
	}
}

func WithExtractor(x interfaces.Extractor) Option {
	return func(uc *UseCases) {
		uc.extractor = x
	}
}

func WithResolver(r *situation.Resolver) Option {
	return func(uc *UseCases) {
		uc.resolver = r
	}
}

// WithGenerator sets the reply generator. The offline Local generator is used
// when none is given.
func WithGenerator(g interfaces.Generator) Option {
	return func(uc *UseCases) {
		uc.generator = g
	}
}

func WithSpeech(s *speech.Service) Option {
	return func(uc *UseCases) {
		uc.speech = s
	}
}

// WithFactTopK sets how many facts are retrieved per turn
func WithFactTopK(k int) Option {
	return func(uc *UseCases) {
		uc.topK = k
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		topK: factstore.DefaultTopK,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.classifier == nil {
		uc.classifier = affect.NewClassifier()
	}
	if uc.extractor == nil {
		uc.extractor = extract.New(extract.DefaultPatterns())
	}
	if uc.resolver == nil {
		uc.resolver = situation.NewResolver()
	}
	if uc.generator == nil {
		uc.generator = generator.NewLocal()
	}
	if uc.speech == nil {
		uc.speech = speech.New()
	}

	facts := factstore.New(repo.Fact(), factstore.WithTopK(uc.topK))
	tracker := affect.NewTracker(uc.classifier, repo.Profile())

	uc.Dialog = NewDialogUseCase(repo, tracker, facts, uc.extractor, uc.resolver, uc.generator, uc.speech, uc.topK)
	uc.Profile = NewProfileUseCase(repo, facts)

	return uc
}
