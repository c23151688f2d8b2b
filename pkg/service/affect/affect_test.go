package affect_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/repository/memory"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
)

type countingProfiles struct {
	interfaces.ProfileRepository
	puts atomic.Int32
}

type flakyProfiles struct {
	interfaces.ProfileRepository
	getErr error
}

func (f *flakyProfiles) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if f.getErr != nil {
		err := f.getErr
		f.getErr = nil
		return nil, err
	}
	return f.ProfileRepository.Get(ctx, userID)
}

func (c *countingProfiles) Put(ctx context.Context, p *model.Profile) error {
	c.puts.Add(1)
	return c.ProfileRepository.Put(ctx, p)
}

func TestClassify(t *testing.T) {
	classifier := affect.NewClassifier()

	tests := []struct {
		name      string
		utterance string
		category  string
		matched   bool
	}{
		{name: "fatigue", utterance: "я устал", category: affect.CategoryFatigue, matched: true},
		{name: "fatigue phrase", utterance: "Нет сил идти дальше", category: affect.CategoryFatigue, matched: true},
		{name: "positive", utterance: "Спасибо большое", category: affect.CategoryPositive, matched: true},
		{name: "positive uppercase", utterance: "ОТЛИЧНО", category: affect.CategoryPositive, matched: true},
		{name: "stress", utterance: "опять ошибка в билете", category: affect.CategoryStress, matched: true},
		{name: "fatigue wins over stress", utterance: "я устал, не успеваю", category: affect.CategoryFatigue, matched: true},
		{name: "fatigue wins over positive", utterance: "спасибо, но я хочу спать", category: affect.CategoryFatigue, matched: true},
		{name: "positive wins over stress", utterance: "круто, но проблема осталась", category: affect.CategoryPositive, matched: true},
		{name: "no match", utterance: "где ближайшая остановка", matched: false},
		{name: "empty", utterance: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := classifier.Classify(tt.utterance)
			gt.Value(t, ok).Equal(tt.matched)
			if tt.matched {
				gt.Value(t, rule.Category).Equal(tt.category)
			} else {
				gt.Value(t, rule).Nil()
			}
		})
	}
}

func TestApplyFatigueRegardlessOfPriorState(t *testing.T) {
	tracker := affect.NewTracker(nil, memory.New().Profile())

	for _, mood := range types.AllMoods() {
		for _, energy := range types.AllEnergies() {
			p := model.NewProfile("u1")
			p.Affect = model.AffectState{Mood: mood, Energy: energy}

			rule := tracker.Apply(p, "очень тяжело сегодня")
			gt.Value(t, rule).NotNil()
			gt.Value(t, p.Affect.Mood).Equal(types.MoodTired)
			gt.Value(t, p.Affect.Energy).Equal(types.EnergyLow)
		}
	}
}

func TestApplyStressKeepsEnergy(t *testing.T) {
	tracker := affect.NewTracker(nil, memory.New().Profile())

	p := model.NewProfile("u1")
	p.Affect = model.AffectState{Mood: types.MoodHappy, Energy: types.EnergyHigh}

	tracker.Apply(p, "черт, проблема")
	gt.Value(t, p.Affect.Mood).Equal(types.MoodStressed)
	gt.Value(t, p.Affect.Energy).Equal(types.EnergyHigh)
}

func TestUpdate(t *testing.T) {
	t.Run("fatigue sets tired and low energy", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		tracker := affect.NewTracker(nil, repo.Profile())

		state, err := tracker.Update(ctx, "u1", "я устал")
		gt.NoError(t, err).Required()
		gt.Value(t, state).Equal(model.AffectState{Mood: types.MoodTired, Energy: types.EnergyLow})

		stored, err := repo.Profile().Get(ctx, "u1")
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Affect).Equal(state)
	})

	t.Run("no match does not write", func(t *testing.T) {
		ctx := context.Background()
		profiles := &countingProfiles{ProfileRepository: memory.New().Profile()}
		tracker := affect.NewTracker(nil, profiles)

		p := model.NewProfile("u1")
		p.Affect = model.AffectState{Mood: types.MoodStressed, Energy: types.EnergyLow}
		gt.NoError(t, profiles.Put(ctx, p)).Required()
		profiles.puts.Store(0)

		state, err := tracker.Update(ctx, "u1", "какая сегодня погода")
		gt.NoError(t, err).Required()
		gt.Value(t, state).Equal(p.Affect)
		gt.Value(t, profiles.puts.Load()).Equal(int32(0))
	})

	t.Run("unknown user starts from defaults", func(t *testing.T) {
		profiles := &countingProfiles{ProfileRepository: memory.New().Profile()}
		tracker := affect.NewTracker(nil, profiles)

		state, err := tracker.Update(context.Background(), "new-user", "привет")
		gt.NoError(t, err).Required()
		gt.Value(t, state).Equal(model.DefaultAffectState())
		gt.Value(t, profiles.puts.Load()).Equal(int32(0))
	})

	t.Run("read failure keeps stored profile", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()

		p := model.NewProfile("u1")
		p.Name = "Алекс"
		p.AddInterest("чай")
		gt.NoError(t, repo.Profile().Put(ctx, p)).Required()

		profiles := &flakyProfiles{ProfileRepository: repo.Profile(), getErr: errors.New("read timeout")}
		tracker := affect.NewTracker(nil, profiles)

		state, err := tracker.Update(ctx, "u1", "я устал")
		gt.NoError(t, err).Required()
		gt.Value(t, state).Equal(model.AffectState{Mood: types.MoodTired, Energy: types.EnergyLow})

		stored, err := repo.Profile().Get(ctx, "u1")
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Name).Equal("Алекс")
		gt.Value(t, stored.Interests).Equal([]string{"чай"})
		gt.Value(t, stored.Affect).Equal(model.DefaultAffectState())
	})
}

func TestCustomRules(t *testing.T) {
	classifier := affect.NewClassifier(affect.Rule{
		Category: "joy",
		Triggers: []string{"  Ура "},
		Mood:     types.MoodHappy,
	})

	rule, ok := classifier.Classify("ура, мы пришли")
	gt.Value(t, ok).Equal(true)
	gt.Value(t, rule.Category).Equal("joy")

	_, ok = classifier.Classify("я устал")
	gt.Value(t, ok).Equal(false)
	gt.Array(t, classifier.Rules()).Length(1)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		state    model.AffectState
		expected string
	}{
		{model.AffectState{Mood: types.MoodNeutral, Energy: types.EnergyNormal}, "Настроение: спокойное, Энергия: normal"},
		{model.AffectState{Mood: types.MoodHappy, Energy: types.EnergyHigh}, "Настроение: радостное, Энергия: high"},
		{model.AffectState{Mood: types.MoodTired, Energy: types.EnergyLow}, "Настроение: уставшее, Энергия: low"},
		{model.AffectState{Mood: types.MoodStressed, Energy: types.EnergyNormal}, "Настроение: напряженное, Энергия: normal"},
		{model.AffectState{Mood: "confused", Energy: types.EnergyNormal}, "Настроение: обычное, Энергия: normal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state.Mood), func(t *testing.T) {
			gt.Value(t, affect.Describe(tt.state)).Equal(tt.expected)
		})
	}
}
