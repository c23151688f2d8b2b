package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
	"github.com/secmon-lab/wayfinder/pkg/service/factstore"
)

// ProfileUseCase serves read-only views of a user's memory
type ProfileUseCase struct {
	repo  interfaces.Repository
	facts *factstore.Store
}

// NewProfileUseCase creates a new ProfileUseCase
func NewProfileUseCase(repo interfaces.Repository, facts *factstore.Store) *ProfileUseCase {
	return &ProfileUseCase{
		repo:  repo,
		facts: facts,
	}
}

// ProfileView is a profile with its rendered affect description
type ProfileView struct {
	Profile     *model.Profile
	Description string
	Known       bool // false when the user has never talked to us
}

// GetProfile returns the stored profile, or defaults for an unknown user
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrEmptyUserID, "profile requested without user")
	}

	known := true
	profile, err := uc.repo.Profile().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to get profile", goerr.V(UserIDKey, userID))
		}
		profile = model.NewProfile(userID)
		known = false
	}

	return &ProfileView{
		Profile:     profile,
		Description: affect.Describe(profile.Affect),
		Known:       known,
	}, nil
}

// ListFacts returns every fact of the user in insertion order
func (uc *ProfileUseCase) ListFacts(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrEmptyUserID, "facts requested without user")
	}
	entries, err := uc.repo.Fact().List(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list facts", goerr.V(UserIDKey, userID))
	}
	return entries, nil
}

// SearchFacts ranks the user's facts against query
func (uc *ProfileUseCase) SearchFacts(ctx context.Context, userID, query string, topK int) ([]model.ScoredFact, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrEmptyUserID, "facts requested without user")
	}
	return uc.facts.Search(ctx, userID, query, topK)
}

// RenderFacts returns the fact block the prompt would contain for query
func (uc *ProfileUseCase) RenderFacts(ctx context.Context, userID, query string) (string, error) {
	if userID == "" {
		return "", goerr.Wrap(ErrEmptyUserID, "facts requested without user")
	}
	return uc.facts.RenderContext(ctx, userID, query)
}

// ListUsers returns the IDs of all known users
func (uc *ProfileUseCase) ListUsers(ctx context.Context) ([]string, error) {
	ids, err := uc.repo.Profile().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return ids, nil
}
