package model

import (
	"strings"
	"time"

	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

// AffectState is the tracked mood/energy pair of a user. Exactly one mood and
// one energy value hold at any time.
type AffectState struct {
	Mood   types.Mood
	Energy types.Energy
}

// DefaultAffectState returns the state every new user starts with
func DefaultAffectState() AffectState {
	return AffectState{
		Mood:   types.MoodNeutral,
		Energy: types.EnergyNormal,
	}
}

// Profile holds the long-lived attributes of a user: name, interests and the
// affect state. It is created on first contact and never deleted by the dialog.
type Profile struct {
	UserID    string
	Name      string // empty when unknown
	Interests []string
	Affect    AffectState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile returns a profile initialized with defaults
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:    userID,
		Interests: []string{},
		Affect:    DefaultAffectState(),
	}
}

// Normalize restores defaults for missing or malformed values, e.g. after
// loading a record written by an older version.
func (p *Profile) Normalize() {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	p.Affect.Mood = p.Affect.Mood.Normalize()
	p.Affect.Energy = p.Affect.Energy.Normalize()
}

// HasName reports whether the user's name is known
func (p *Profile) HasName() bool {
	return p.Name != ""
}

// AddInterest appends interest unless an equal one (case-insensitive) is
// already present. Returns true if the profile changed.
func (p *Profile) AddInterest(interest string) bool {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return false
	}
	for _, existing := range p.Interests {
		if strings.EqualFold(existing, interest) {
			return false
		}
	}
	p.Interests = append(p.Interests, interest)
	return true
}

// Copy returns a deep copy of the profile
func (p *Profile) Copy() *Profile {
	copied := *p
	copied.Interests = make([]string, len(p.Interests))
	copy(copied.Interests, p.Interests)
	return &copied
}
