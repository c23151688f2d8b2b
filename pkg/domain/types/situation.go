package types

// SituationLabel is a coarse time-of-day bucket
type SituationLabel string

const (
	SituationMorning SituationLabel = "morning"
	SituationMidday  SituationLabel = "midday"
	SituationEvening SituationLabel = "evening"
	SituationNight   SituationLabel = "night"
)

var situationTexts = map[SituationLabel]string{
	SituationMorning: "утро",
	SituationMidday:  "день",
	SituationEvening: "вечер",
	SituationNight:   "ночь",
}

// IsValid checks if the label is valid
func (s SituationLabel) IsValid() bool {
	_, ok := situationTexts[s]
	return ok
}

// Text returns the user-facing word for the label used in prompts
func (s SituationLabel) Text() string {
	if text, ok := situationTexts[s]; ok {
		return text
	}
	return string(s)
}

func (s SituationLabel) String() string {
	return string(s)
}
