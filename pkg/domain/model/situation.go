package model

import "github.com/secmon-lab/wayfinder/pkg/domain/types"

// Situation is derived from wall-clock time and never stored
type Situation struct {
	Label types.SituationLabel
	Clock string // HH:MM
}
