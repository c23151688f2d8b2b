package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"github.com/secmon-lab/wayfinder/pkg/service/generator"
	"github.com/secmon-lab/wayfinder/pkg/service/prompt"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"Впереди дверь."}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
	sessions     int
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	c.sessions++
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestLLMGenerate(t *testing.T) {
	t.Run("joins response texts", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						gt.Array(t, input).Length(1)
						text, ok := input[0].(gollem.Text)
						gt.Value(t, ok).Equal(true)
						gt.Value(t, string(text)).Equal("что впереди?")
						return &gollem.Response{Texts: []string{"Впереди дверь.", "Справа лестница."}}, nil
					},
				}, nil
			},
		}

		g, err := generator.NewLLM(client)
		gt.NoError(t, err).Required()

		reply, err := g.Generate(context.Background(), "system", "что впереди?")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).Equal("Впереди дверь.\nСправа лестница.")
	})

	t.Run("opens a session per call", func(t *testing.T) {
		client := &mockLLMClient{}
		g, err := generator.NewLLM(client)
		gt.NoError(t, err).Required()

		for range 3 {
			_, err := g.Generate(context.Background(), "system", "привет")
			gt.NoError(t, err).Required()
		}
		gt.Value(t, client.sessions).Equal(3)
	})

	t.Run("model failure is returned", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, errors.New("quota exceeded")
					},
				}, nil
			},
		}
		g, err := generator.NewLLM(client)
		gt.NoError(t, err).Required()

		reply, err := g.Generate(context.Background(), "system", "привет")
		gt.Value(t, err).NotNil()
		gt.Value(t, reply).Equal("")
	})

	t.Run("empty reply is an error", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"  "}}, nil
					},
				}, nil
			},
		}
		g, err := generator.NewLLM(client)
		gt.NoError(t, err).Required()

		_, err = g.Generate(context.Background(), "system", "привет")
		gt.Error(t, err).Is(generator.ErrEmptyReply)
	})

	t.Run("session failure is returned", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("unavailable")
			},
		}
		g, err := generator.NewLLM(client)
		gt.NoError(t, err).Required()

		_, err = g.Generate(context.Background(), "system", "привет")
		gt.Value(t, err).NotNil()
	})

	t.Run("nil client is rejected", func(t *testing.T) {
		_, err := generator.NewLLM(nil)
		gt.Value(t, err).NotNil()
	})
}

func buildPrompt(t *testing.T, name, visual string) string {
	t.Helper()
	p := model.NewProfile("u1")
	p.Name = name
	out, err := prompt.Build(prompt.Input{
		Affect:    model.DefaultAffectState(),
		Profile:   p,
		Situation: model.Situation{Label: types.SituationMorning, Clock: "08:00"},
		Visual:    visual,
	})
	gt.NoError(t, err).Required()
	return out
}

func TestLocalGenerate(t *testing.T) {
	g := generator.NewLocal()
	ctx := context.Background()

	tests := []struct {
		name      string
		prompt    string
		utterance string
		expected  string
	}{
		{"reads name from prompt", buildPrompt(t, "Алекс", ""), "как меня зовут", "Тебя зовут Алекс."},
		{"unknown name", buildPrompt(t, "", ""), "Как меня зовут?", "Я пока не знаю твоего имени. Представься, пожалуйста."},
		{"own name", buildPrompt(t, "", ""), "как тебя зовут", "Я A-Vision, твой умный помощник."},
		{"tired", buildPrompt(t, "", ""), "я устал", "Отдохни немного. Может, выпьем кофе?"},
		{"describes scene", buildPrompt(t, "", "стол и чашка"), "что ты видишь", "Я вижу: стол и чашка."},
		{"no scene", buildPrompt(t, "", ""), "что ты видишь", "Сейчас я ничего не вижу, изображение недоступно."},
		{"fallback with name", buildPrompt(t, "Анна", ""), "пойдем дальше", "Понял, Анна. Продолжаем работу."},
		{"fallback without name", buildPrompt(t, "", ""), "пойдем дальше", "Понял, друг. Продолжаем работу."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := g.Generate(ctx, tt.prompt, tt.utterance)
			gt.NoError(t, err).Required()
			gt.Value(t, reply).Equal(tt.expected)
		})
	}
}

func TestLocalGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.NewLocal().Generate(ctx, "", "привет")
	gt.Error(t, err).Is(context.Canceled)
}
