package model

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FactID is a UUID-based identifier for FactEntry
type FactID string

// NewFactID generates a new UUID v7 FactID. v7 keeps IDs sortable by creation time.
func NewFactID() FactID {
	return FactID(uuid.Must(uuid.NewV7()).String())
}

// FactEntry is a piece of text the user disclosed about themselves. Entries
// are append-only and never merged.
type FactEntry struct {
	ID        FactID
	UserID    string
	Text      string
	Metadata  map[string]string
	CreatedAt time.Time
}

// Copy returns a deep copy of the entry
func (f *FactEntry) Copy() *FactEntry {
	copied := *f
	copied.Metadata = make(map[string]string, len(f.Metadata))
	maps.Copy(copied.Metadata, f.Metadata)
	return &copied
}

// ScoredFact is a search hit with its relevance score
type ScoredFact struct {
	Entry *FactEntry
	Score int
}

// FactContextHeader is the heading placed above rendered facts
const FactContextHeader = "Известные факты из прошлого:"

// RenderFacts formats entries as a numbered list under FactContextHeader.
// Empty input renders as an empty string.
func RenderFacts(entries []*FactEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(FactContextHeader)
	sb.WriteString("\n")
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, entry.Text)
	}
	return sb.String()
}

// Entries returns the entries of scored facts in order
func Entries(facts []ScoredFact) []*FactEntry {
	entries := make([]*FactEntry, len(facts))
	for i, f := range facts {
		entries[i] = f.Entry
	}
	return entries
}
