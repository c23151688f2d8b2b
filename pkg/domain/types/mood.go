package types

import "fmt"

// Mood is the inferred emotional condition of a user
type Mood string

const (
	MoodNeutral  Mood = "neutral"
	MoodHappy    Mood = "happy"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// AllMoods returns all valid moods
func AllMoods() []Mood {
	return []Mood{
		MoodNeutral,
		MoodHappy,
		MoodTired,
		MoodStressed,
	}
}

// IsValid checks if the mood is valid
func (m Mood) IsValid() bool {
	switch m {
	case MoodNeutral,
		MoodHappy,
		MoodTired,
		MoodStressed:
		return true
	default:
		return false
	}
}

// Normalize returns the mood, treating empty and unknown values as MoodNeutral.
func (m Mood) Normalize() Mood {
	if !m.IsValid() {
		return MoodNeutral
	}
	return m
}

func (m Mood) String() string {
	return string(m)
}

// ParseMood parses a string into a Mood
func ParseMood(s string) (Mood, error) {
	mood := Mood(s)
	if !mood.IsValid() {
		return "", fmt.Errorf("invalid mood: %s", s)
	}
	return mood, nil
}
