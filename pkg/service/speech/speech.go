// Package speech picks a voice matching the user's mood and optionally
// renders replies to audio.
package speech

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
)

const (
	VoiceDmitry   = "ru-RU-DmitryNeural"
	VoiceSvetlana = "ru-RU-SvetlanaNeural"
)

var voices = map[types.Mood]model.Voice{
	types.MoodHappy: {Name: VoiceSvetlana, Rate: "+5%"},
	types.MoodTired: {Name: VoiceDmitry, Rate: "-10%"},
}

var defaultVoice = model.Voice{Name: VoiceDmitry, Rate: "+0%"}

// Service is created once per process and passed to whoever needs speech.
// Without a synthesizer it only selects voices.
type Service struct {
	synth interfaces.Synthesizer
}

type Option func(*Service)

func WithSynthesizer(synth interfaces.Synthesizer) Option {
	return func(s *Service) {
		s.synth = synth
	}
}

func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VoiceFor returns the voice for mood: brighter and faster when the user is
// happy, slower when tired
func (s *Service) VoiceFor(mood types.Mood) model.Voice {
	if v, ok := voices[mood]; ok {
		return v
	}
	return defaultVoice
}

// Enabled reports whether audio can be produced
func (s *Service) Enabled() bool {
	return s != nil && s.synth != nil
}

// Synthesize renders text with the voice for mood. It returns nil audio when
// no synthesizer is configured.
func (s *Service) Synthesize(ctx context.Context, text string, mood types.Mood) (model.Voice, []byte, error) {
	voice := s.VoiceFor(mood)
	if !s.Enabled() || text == "" {
		return voice, nil, nil
	}

	audio, err := s.synth.Synthesize(ctx, text, voice.Name, voice.Rate)
	if err != nil {
		return voice, nil, goerr.Wrap(err, "failed to synthesize speech",
			goerr.V("voice", voice.Name),
			goerr.V("rate", voice.Rate),
		)
	}
	return voice, audio, nil
}
