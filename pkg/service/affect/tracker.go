package affect

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
)

// Tracker keeps the affect state of users up to date
type Tracker struct {
	classifier *Classifier
	profiles   interfaces.ProfileRepository
}

func NewTracker(classifier *Classifier, profiles interfaces.ProfileRepository) *Tracker {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Tracker{
		classifier: classifier,
		profiles:   profiles,
	}
}

// Apply classifies utterance and mutates profile in place. It returns the
// fired rule, or nil when nothing matched and the profile is untouched.
func (t *Tracker) Apply(profile *model.Profile, utterance string) *Rule {
	rule, ok := t.classifier.Classify(utterance)
	if !ok {
		return nil
	}
	profile.Affect = rule.Apply(profile.Affect)
	return rule
}

// Update loads the user's profile, applies the rules and persists the result.
// No write happens when no rule matches. A missing profile starts from
// defaults. An unreadable one is classified from defaults too, but never
// written back, since that would overwrite the stored name and interests.
func (t *Tracker) Update(ctx context.Context, userID string, utterance string) (model.AffectState, error) {
	readOnly := false
	profile, err := t.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("failed to load profile, using defaults", "user_id", userID, "error", err)
			readOnly = true
		}
		profile = model.NewProfile(userID)
	}

	rule := t.Apply(profile, utterance)
	if rule == nil || readOnly {
		return profile.Affect, nil
	}

	if err := t.profiles.Put(ctx, profile); err != nil {
		return profile.Affect, goerr.Wrap(err, "failed to persist affect state",
			goerr.V("userID", userID),
			goerr.V("category", rule.Category),
		)
	}

	return profile.Affect, nil
}
