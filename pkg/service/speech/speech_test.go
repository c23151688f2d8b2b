package speech_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/service/speech"
)

type mockSynthesizer struct {
	calls []string
	err   error
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, voice, rate string) ([]byte, error) {
	m.calls = append(m.calls, voice+"|"+rate+"|"+text)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("RIFF"), nil
}

func TestVoiceFor(t *testing.T) {
	svc := speech.New()

	tests := []struct {
		mood types.Mood
		name string
		rate string
	}{
		{types.MoodHappy, speech.VoiceSvetlana, "+5%"},
		{types.MoodTired, speech.VoiceDmitry, "-10%"},
		{types.MoodNeutral, speech.VoiceDmitry, "+0%"},
		{types.MoodStressed, speech.VoiceDmitry, "+0%"},
		{"unknown", speech.VoiceDmitry, "+0%"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			v := svc.VoiceFor(tt.mood)
			gt.Value(t, v.Name).Equal(tt.name)
			gt.Value(t, v.Rate).Equal(tt.rate)
		})
	}
}

func TestSynthesize(t *testing.T) {
	t.Run("without synthesizer only selects voice", func(t *testing.T) {
		svc := speech.New()
		gt.Value(t, svc.Enabled()).Equal(false)

		voice, audio, err := svc.Synthesize(context.Background(), "Привет", types.MoodHappy)
		gt.NoError(t, err).Required()
		gt.Value(t, voice.Name).Equal(speech.VoiceSvetlana)
		gt.Value(t, audio).Nil()
	})

	t.Run("passes voice and rate to synthesizer", func(t *testing.T) {
		synth := &mockSynthesizer{}
		svc := speech.New(speech.WithSynthesizer(synth))

		_, audio, err := svc.Synthesize(context.Background(), "Отдохни", types.MoodTired)
		gt.NoError(t, err).Required()
		gt.Value(t, audio).Equal([]byte("RIFF"))
		gt.Value(t, synth.calls).Equal([]string{speech.VoiceDmitry + "|-10%|Отдохни"})
	})

	t.Run("synthesizer failure is returned", func(t *testing.T) {
		synth := &mockSynthesizer{err: errors.New("tts down")}
		svc := speech.New(speech.WithSynthesizer(synth))

		voice, audio, err := svc.Synthesize(context.Background(), "Привет", types.MoodNeutral)
		gt.Value(t, err).NotNil()
		gt.Value(t, audio).Nil()
		gt.Value(t, voice.Name).Equal(speech.VoiceDmitry)
	})
}
