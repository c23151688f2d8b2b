package affect

import (
	"fmt"

	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

const fallbackMoodLabel = "обычное"

var moodLabels = map[types.Mood]string{
	types.MoodNeutral:  "спокойное",
	types.MoodHappy:    "радостное",
	types.MoodStressed: "напряженное",
	types.MoodTired:    "уставшее",
}

// MoodLabel returns the human readable mood, or a fallback for unknown values
func MoodLabel(mood types.Mood) string {
	if label, ok := moodLabels[mood]; ok {
		return label
	}
	return fallbackMoodLabel
}

// Describe renders the state for prompts and operator output
func Describe(state model.AffectState) string {
	return fmt.Sprintf("Настроение: %s, Энергия: %s", MoodLabel(state.Mood), state.Energy)
}
