package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
	"github.com/secmon-lab/wayfinder/pkg/service/factstore"
	"github.com/secmon-lab/wayfinder/pkg/service/prompt"
	"github.com/secmon-lab/wayfinder/pkg/service/situation"
	"github.com/secmon-lab/wayfinder/pkg/service/speech"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
)

// DialogUseCase runs conversation turns. At most one turn per user is in
// flight; turns of different users run in parallel.
type DialogUseCase struct {
	repo      interfaces.Repository
	tracker   *affect.Tracker
	facts     *factstore.Store
	extractor interfaces.Extractor
	resolver  *situation.Resolver
	generator interfaces.Generator
	speech    *speech.Service
	topK      int
	locks     *userLocks
}

// NewDialogUseCase creates a new DialogUseCase
func NewDialogUseCase(
	repo interfaces.Repository,
	tracker *affect.Tracker,
	facts *factstore.Store,
	extractor interfaces.Extractor,
	resolver *situation.Resolver,
	generator interfaces.Generator,
	speechSvc *speech.Service,
	topK int,
) *DialogUseCase {
	if topK <= 0 {
		topK = factstore.DefaultTopK
	}
	if speechSvc == nil {
		speechSvc = speech.New()
	}
	return &DialogUseCase{
		repo:      repo,
		tracker:   tracker,
		facts:     facts,
		extractor: extractor,
		resolver:  resolver,
		generator: generator,
		speech:    speechSvc,
		topK:      topK,
		locks:     newUserLocks(),
	}
}

// SessionState reports whether a turn of the user is running
func (uc *DialogUseCase) SessionState(userID string) types.SessionState {
	return uc.locks.state(userID)
}

// HandleTurn processes one utterance. Profile changes are persisted before
// the generator is called, so they survive a failed or cancelled generation.
// A generation failure is reported as ErrGenerationFailed and never as a
// reply.
func (uc *DialogUseCase) HandleTurn(ctx context.Context, in model.TurnInput) (*model.TurnResult, error) {
	if in.UserID == "" {
		return nil, goerr.Wrap(ErrEmptyUserID, "turn has no user")
	}

	utterance := strings.TrimSpace(in.Utterance)
	if utterance == "" {
		return &model.TurnResult{}, nil
	}

	release, err := uc.locks.acquire(ctx, in.UserID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to wait for previous turn", goerr.V(UserIDKey, in.UserID))
	}
	defer release()

	logger := logging.From(ctx).With(slog.String(UserIDKey, in.UserID))
	ctx = logging.With(ctx, logger)
	started := time.Now()

	profile, persistable := uc.loadProfile(ctx, in.UserID)
	before := profile.Copy()

	// Affect
	rule := uc.tracker.Apply(profile, utterance)

	// Facts
	stored := uc.storeFacts(ctx, in.UserID, utterance)

	// Name and interests
	if name, ok := uc.extractor.Name(utterance); ok {
		profile.Name = name
	}
	for _, interest := range uc.extractor.Interests(utterance) {
		profile.AddInterest(interest)
	}

	// Retrieval
	var retrieved []*model.FactEntry
	if results, err := uc.facts.Search(ctx, in.UserID, utterance, uc.topK); err != nil {
		logger.Warn("fact search failed, continuing without facts", "error", err)
	} else {
		retrieved = model.Entries(results)
	}

	current, err := uc.resolver.Current()
	if err != nil {
		logger.Warn("failed to resolve situation", "error", err)
	}

	visual, _ := in.Scene.VisualContext()
	systemPrompt, err := prompt.Build(prompt.Input{
		Affect:    profile.Affect,
		Profile:   profile,
		Situation: current,
		Facts:     retrieved,
		Visual:    visual,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build prompt", goerr.V(UserIDKey, in.UserID))
	}

	if profileChanged(before, profile) || persistable == persistNew {
		if persistable == persistSkip {
			logger.Warn("profile was not loaded, skipping write to keep stored state")
		} else if err := uc.repo.Profile().Put(ctx, profile); err != nil {
			return nil, goerr.Wrap(errors.Join(ErrStatePersist, err), "failed to persist profile",
				goerr.V(UserIDKey, in.UserID))
		}
	}

	reply, err := uc.generator.Generate(ctx, systemPrompt, utterance)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrGenerationFailed, err), "generator did not reply",
			goerr.V(UserIDKey, in.UserID))
	}

	voice, audio, err := uc.speech.Synthesize(ctx, reply, profile.Affect.Mood)
	if err != nil {
		logger.Warn("speech synthesis failed, replying with text only", "error", err)
	}

	category := ""
	if rule != nil {
		category = rule.Category
	}
	logger.Info("turn completed",
		"affect_rule", category,
		"mood", profile.Affect.Mood,
		"energy", profile.Affect.Energy,
		"stored_facts", len(stored),
		"retrieved_facts", len(retrieved),
		"latency", time.Since(started),
	)

	return &model.TurnResult{
		Reply:       reply,
		Affect:      profile.Affect,
		Situation:   current,
		StoredFacts: stored,
		Voice:       &voice,
		Audio:       audio,
	}, nil
}

type persistMode int

const (
	persistExisting persistMode = iota
	persistNew
	persistSkip
)

// loadProfile returns the stored profile or defaults. A first-contact
// profile must be written; a profile that failed to load must not, since
// the defaults would overwrite real data.
func (uc *DialogUseCase) loadProfile(ctx context.Context, userID string) (*model.Profile, persistMode) {
	profile, err := uc.repo.Profile().Get(ctx, userID)
	if err == nil {
		return profile, persistExisting
	}
	if errors.Is(err, interfaces.ErrNotFound) {
		return model.NewProfile(userID), persistNew
	}

	logging.From(ctx).Warn("failed to load profile, using defaults", "error", err)
	return model.NewProfile(userID), persistSkip
}

func (uc *DialogUseCase) storeFacts(ctx context.Context, userID, utterance string) []*model.FactEntry {
	var stored []*model.FactEntry
	for _, text := range uc.extractor.CandidateFacts(utterance) {
		entry, err := uc.facts.Append(ctx, userID, text, map[string]string{"source": "dialog"})
		if err != nil {
			logging.From(ctx).Warn("failed to store fact", "error", err)
			continue
		}
		stored = append(stored, entry)
	}
	return stored
}

func profileChanged(before, after *model.Profile) bool {
	return before.Name != after.Name ||
		before.Affect != after.Affect ||
		!slices.Equal(before.Interests, after.Interests)
}
