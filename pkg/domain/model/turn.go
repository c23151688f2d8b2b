package model

// TurnInput is one user utterance delivered by the transport
type TurnInput struct {
	UserID    string
	Utterance string
	Scene     *Scene // nil when no camera frame was available
}

// Voice selects how a reply should be spoken
type Voice struct {
	Name string
	Rate string // relative speaking rate, e.g. "+5%"
}

// TurnResult is the outcome of a completed turn
type TurnResult struct {
	Reply       string
	Affect      AffectState
	Situation   Situation
	StoredFacts []*FactEntry
	Voice       *Voice
	Audio       []byte
}
