// Package record is the JSON encoding shared by the document-style backends
// (file, gcs and redis) and the fact preparation every backend applies.
package record

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

// Profile is the persisted form of model.Profile. Name is null while unknown.
type Profile struct {
	UserID    string    `json:"user_id"`
	Name      *string   `json:"name"`
	Interests []string  `json:"interests"`
	Mood      string    `json:"mood"`
	Energy    string    `json:"energy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fact is the persisted form of model.FactEntry
type Fact struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func MarshalProfile(p *model.Profile) ([]byte, error) {
	rec := Profile{
		UserID:    p.UserID,
		Interests: p.Interests,
		Mood:      string(p.Affect.Mood),
		Energy:    string(p.Affect.Energy),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if rec.Interests == nil {
		rec.Interests = []string{}
	}
	if p.HasName() {
		name := p.Name
		rec.Name = &name
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal profile", goerr.V("userID", p.UserID))
	}
	return data, nil
}

// UnmarshalProfile decodes a profile and replaces unknown mood or energy
// values with defaults.
func UnmarshalProfile(data []byte) (*model.Profile, error) {
	var rec Profile
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile")
	}

	p := &model.Profile{
		UserID:    rec.UserID,
		Interests: rec.Interests,
		Affect: model.AffectState{
			Mood:   types.Mood(rec.Mood),
			Energy: types.Energy(rec.Energy),
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if rec.Name != nil {
		p.Name = *rec.Name
	}
	p.Normalize()
	return p, nil
}

func MarshalFact(f *model.FactEntry) ([]byte, error) {
	data, err := json.Marshal(Fact{
		ID:        string(f.ID),
		UserID:    f.UserID,
		Text:      f.Text,
		Metadata:  f.Metadata,
		CreatedAt: f.CreatedAt,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal fact", goerr.V("factID", f.ID))
	}
	return data, nil
}

func UnmarshalFact(data []byte) (*model.FactEntry, error) {
	var rec Fact
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal fact")
	}

	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &model.FactEntry{
		ID:        model.FactID(rec.ID),
		UserID:    rec.UserID,
		Text:      rec.Text,
		Metadata:  metadata,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// PrepareFact fills ID, owner and timestamp of a new entry
func PrepareFact(userID string, entry *model.FactEntry, now time.Time) *model.FactEntry {
	created := entry.Copy()
	if created.ID == "" {
		created.ID = model.NewFactID()
	}
	created.UserID = userID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now.UTC()
	}
	return created
}
