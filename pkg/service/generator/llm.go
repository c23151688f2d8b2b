// Package generator produces assistant replies.
package generator

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

// ErrEmptyReply is returned when the model answered with no text
var ErrEmptyReply = goerr.New("empty reply from model")

// LLM generates replies with a gollem client. Every call opens a fresh
// session so no conversation history leaks between turns or users.
type LLM struct {
	client gollem.LLMClient
}

var _ interfaces.Generator = &LLM{}

func NewLLM(client gollem.LLMClient) (*LLM, error) {
	if client == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &LLM{client: client}, nil
}

func (g *LLM) Generate(ctx context.Context, systemPrompt, utterance string) (string, error) {
	session, err := g.client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(utterance))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}

	reply := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if reply == "" {
		return "", goerr.Wrap(ErrEmptyReply, "model returned no text")
	}
	return reply, nil
}
