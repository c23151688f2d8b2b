package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/service/affect"
	"github.com/secmon-lab/wayfinder/pkg/service/extract"
)

// Locale overrides the built-in phrase tables. Omitted sections keep their
// defaults.
type Locale struct {
	AffectRules []AffectRule  `toml:"affect_rule"`
	Extract     *ExtractTable `toml:"extract"`
}

// AffectRule is one row of the affect rule table. Rules are evaluated in
// file order and the first match wins.
type AffectRule struct {
	Category string   `toml:"category"`
	Triggers []string `toml:"triggers"`
	Mood     string   `toml:"mood"`
	// Energy is optional; empty leaves energy unchanged
	Energy string `toml:"energy"`
}

type ExtractTable struct {
	Disclosures     []string `toml:"disclosures"`
	Introduction    *string  `toml:"introduction"`
	QuestionMarkers []string `toml:"question_markers"`
	Preference      *string  `toml:"preference"`
}

func (r *AffectRule) Validate() error {
	if r.Category == "" {
		return goerr.Wrap(ErrInvalidLocale, "affect rule category is required")
	}
	if _, err := types.ParseMood(r.Mood); err != nil {
		return goerr.Wrap(ErrInvalidLocale, "unknown mood",
			goerr.V(CategoryKey, r.Category), goerr.V("mood", r.Mood))
	}
	if r.Energy != "" {
		if _, err := types.ParseEnergy(r.Energy); err != nil {
			return goerr.Wrap(ErrInvalidLocale, "unknown energy",
				goerr.V(CategoryKey, r.Category), goerr.V("energy", r.Energy))
		}
	}

	for _, t := range r.Triggers {
		if t != "" {
			return nil
		}
	}
	return goerr.Wrap(ErrInvalidLocale, "affect rule has no triggers", goerr.V(CategoryKey, r.Category))
}

func (l *Locale) Validate() error {
	categories := make(map[string]bool)
	for i := range l.AffectRules {
		rule := &l.AffectRules[i]
		if err := rule.Validate(); err != nil {
			return goerr.Wrap(err, "invalid affect rule", goerr.V(RuleIndexKey, i))
		}
		if categories[rule.Category] {
			return goerr.Wrap(ErrInvalidLocale, "duplicate affect rule category",
				goerr.V(CategoryKey, rule.Category), goerr.V(RuleIndexKey, i))
		}
		categories[rule.Category] = true
	}

	if x := l.Extract; x != nil {
		if x.Disclosures != nil && len(x.Disclosures) == 0 {
			return goerr.Wrap(ErrInvalidLocale, "disclosures must not be empty when set")
		}
	}
	return nil
}

// Rules returns the affect rule table, or the defaults when the locale has
// none
func (l *Locale) Rules() []affect.Rule {
	if l == nil || len(l.AffectRules) == 0 {
		return affect.DefaultRules()
	}

	rules := make([]affect.Rule, len(l.AffectRules))
	for i, r := range l.AffectRules {
		rules[i] = affect.Rule{
			Category: r.Category,
			Triggers: r.Triggers,
			Mood:     types.Mood(r.Mood),
		}
		if r.Energy != "" {
			energy := types.Energy(r.Energy)
			rules[i].Energy = &energy
		}
	}
	return rules
}

// Patterns returns the extraction patterns with locale overrides applied
func (l *Locale) Patterns() extract.Patterns {
	p := extract.DefaultPatterns()
	if l == nil || l.Extract == nil {
		return p
	}

	x := l.Extract
	if x.Disclosures != nil {
		p.Disclosures = x.Disclosures
	}
	if x.Introduction != nil {
		p.Introduction = *x.Introduction
	}
	if x.QuestionMarkers != nil {
		p.QuestionMarkers = x.QuestionMarkers
	}
	if x.Preference != nil {
		p.Preference = *x.Preference
	}
	return p
}

// LoadLocale loads and validates a locale file
func LoadLocale(path string) (*Locale, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrInvalidLocale, "locale file not found", goerr.V(LocalePathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read locale file", goerr.V(LocalePathKey, path))
	}

	var locale Locale
	if err := toml.Unmarshal(data, &locale); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidLocale, err), "failed to parse locale file",
			goerr.V(LocalePathKey, path))
	}

	if err := locale.Validate(); err != nil {
		return nil, goerr.Wrap(err, "locale validation failed", goerr.V(LocalePathKey, path))
	}

	return &locale, nil
}
