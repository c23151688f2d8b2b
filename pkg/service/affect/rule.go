package affect

import (
	"strings"

	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

// Rule maps a set of trigger substrings to a resulting affect state. A nil
// Energy leaves the current energy untouched.
type Rule struct {
	Category string
	Triggers []string
	Mood     types.Mood
	Energy   *types.Energy
}

// Matches reports whether the case-folded text contains any trigger
func (r *Rule) Matches(folded string) bool {
	for _, trigger := range r.Triggers {
		if trigger != "" && strings.Contains(folded, trigger) {
			return true
		}
	}
	return false
}

// Apply returns the state that results from this rule firing on current
func (r *Rule) Apply(current model.AffectState) model.AffectState {
	next := model.AffectState{
		Mood:   r.Mood,
		Energy: current.Energy,
	}
	if r.Energy != nil {
		next.Energy = *r.Energy
	}
	return next
}

func energyPtr(e types.Energy) *types.Energy {
	return &e
}

const (
	CategoryFatigue  = "fatigue"
	CategoryPositive = "positive"
	CategoryStress   = "stress"
)

// DefaultRules returns the built-in Russian rule table in evaluation order.
// The first matching rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryFatigue,
			Triggers: []string{"устал", "спать", "нет сил", "тяжело"},
			Mood:     types.MoodTired,
			Energy:   energyPtr(types.EnergyLow),
		},
		{
			Category: CategoryPositive,
			Triggers: []string{"круто", "спасибо", "рад", "отлично"},
			Mood:     types.MoodHappy,
			Energy:   energyPtr(types.EnergyHigh),
		},
		{
			Category: CategoryStress,
			Triggers: []string{"не успеваю", "проблема", "ошибка", "черт"},
			Mood:     types.MoodStressed,
		},
	}
}
