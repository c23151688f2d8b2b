// Package situation derives the coarse time-of-day context of a turn.
package situation

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

// ErrInvalidClock is returned for a zero time value
var ErrInvalidClock = goerr.New("invalid clock")

const clockLayout = "15:04"

// Resolve maps now to a label using half-open hour ranges:
// [6,12) morning, [12,18) midday, [18,23) evening, otherwise night.
func Resolve(now time.Time) (model.Situation, error) {
	if now.IsZero() {
		return model.Situation{}, goerr.Wrap(ErrInvalidClock, "time is not set")
	}

	var label types.SituationLabel
	switch hour := now.Hour(); {
	case hour >= 6 && hour < 12:
		label = types.SituationMorning
	case hour >= 12 && hour < 18:
		label = types.SituationMidday
	case hour >= 18 && hour < 23:
		label = types.SituationEvening
	default:
		label = types.SituationNight
	}

	return model.Situation{
		Label: label,
		Clock: now.Format(clockLayout),
	}, nil
}

// Resolver resolves the situation for the current moment in a fixed location
type Resolver struct {
	now      func() time.Time
	location *time.Location
}

type Option func(*Resolver)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithLocation sets the time zone the user lives in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.location = loc
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Current() (model.Situation, error) {
	now := r.now()
	if now.IsZero() {
		return Resolve(now)
	}
	return Resolve(now.In(r.location))
}
