package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

func TestMood_IsValid(t *testing.T) {
	tests := []struct {
		name string
		mood types.Mood
		want bool
	}{
		{name: "neutral", mood: types.MoodNeutral, want: true},
		{name: "happy", mood: types.MoodHappy, want: true},
		{name: "tired", mood: types.MoodTired, want: true},
		{name: "stressed", mood: types.MoodStressed, want: true},
		{name: "unknown", mood: types.Mood("angry"), want: false},
		{name: "empty", mood: types.Mood(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.mood.IsValid()).Equal(tt.want)
		})
	}
}

func TestMood_Normalize(t *testing.T) {
	gt.Value(t, types.Mood("").Normalize()).Equal(types.MoodNeutral)
	gt.Value(t, types.Mood("angry").Normalize()).Equal(types.MoodNeutral)
	gt.Value(t, types.MoodTired.Normalize()).Equal(types.MoodTired)
}

func TestParseMood(t *testing.T) {
	mood, err := types.ParseMood("happy")
	gt.NoError(t, err).Required()
	gt.Value(t, mood).Equal(types.MoodHappy)

	_, err = types.ParseMood("HAPPY")
	gt.Error(t, err)
}

func TestEnergy(t *testing.T) {
	for _, e := range types.AllEnergies() {
		gt.Bool(t, e.IsValid()).True()
	}
	gt.Bool(t, types.Energy("max").IsValid()).False()
	gt.Value(t, types.Energy("").Normalize()).Equal(types.EnergyNormal)

	energy, err := types.ParseEnergy("low")
	gt.NoError(t, err).Required()
	gt.Value(t, energy).Equal(types.EnergyLow)

	_, err = types.ParseEnergy("")
	gt.Error(t, err)
}

func TestSituationLabel_Text(t *testing.T) {
	gt.Value(t, types.SituationMorning.Text()).Equal("утро")
	gt.Value(t, types.SituationMidday.Text()).Equal("день")
	gt.Value(t, types.SituationEvening.Text()).Equal("вечер")
	gt.Value(t, types.SituationNight.Text()).Equal("ночь")
	gt.Bool(t, types.SituationLabel("dusk").IsValid()).False()
	gt.Value(t, types.SituationLabel("dusk").Text()).Equal("dusk")
}
