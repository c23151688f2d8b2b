package affect

import "strings"

// Classifier evaluates an ordered rule table against utterances
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier. Without rules the built-in table is used.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		triggers := make([]string, 0, len(r.Triggers))
		for _, t := range r.Triggers {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				triggers = append(triggers, t)
			}
		}
		r.Triggers = triggers
		normalized[i] = r
	}

	return &Classifier{rules: normalized}
}

// Classify returns the first rule matching the utterance. The second value
// is false when no rule matches, which means "no change".
func (c *Classifier) Classify(utterance string) (*Rule, bool) {
	folded := strings.ToLower(utterance)
	for i := range c.rules {
		if c.rules[i].Matches(folded) {
			return &c.rules[i], true
		}
	}
	return nil, false
}

// Rules returns a copy of the rule table in evaluation order
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}
