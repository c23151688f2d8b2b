package interfaces

import "context"

// Generator produces a reply from a system prompt and the user utterance
type Generator interface {
	Generate(ctx context.Context, systemPrompt, utterance string) (string, error)
}

// Synthesizer renders a reply to audio with the given voice and rate
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, rate string) ([]byte, error)
}
