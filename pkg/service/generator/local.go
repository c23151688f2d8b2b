package generator

import (
	"context"
	"strings"

	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

const (
	localNamePrefix   = "Пользователя зовут "
	localVisualPrefix = "ТЫ ВИДИШЬ (КАМЕРА): "
	localDefaultName  = "друг"
)

// Local answers from a handful of canned rules and whatever it can read back
// from the system prompt. It needs no network access and is meant for local
// runs and tests.
type Local struct{}

var _ interfaces.Generator = Local{}

func NewLocal() Local {
	return Local{}
}

func (Local) Generate(ctx context.Context, systemPrompt, utterance string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := strings.ToLower(utterance)
	name, hasName := lineValue(systemPrompt, localNamePrefix, ". ")

	switch {
	case strings.Contains(text, "как тебя зовут"):
		return "Я A-Vision, твой умный помощник.", nil

	case strings.Contains(text, "как меня зовут"):
		if hasName {
			return "Тебя зовут " + name + ".", nil
		}
		return "Я пока не знаю твоего имени. Представься, пожалуйста.", nil

	case strings.Contains(text, "устал"):
		return "Отдохни немного. Может, выпьем кофе?", nil

	case strings.Contains(text, "видишь") || strings.Contains(text, "вижу"):
		if scene, ok := lineValue(systemPrompt, localVisualPrefix, "\n"); ok {
			return "Я вижу: " + scene + ".", nil
		}
		return "Сейчас я ничего не вижу, изображение недоступно.", nil
	}

	if !hasName {
		name = localDefaultName
	}
	return "Понял, " + name + ". Продолжаем работу.", nil
}

// lineValue returns the text after prefix on the same line, cut at stop
func lineValue(prompt, prefix, stop string) (string, bool) {
	idx := strings.Index(prompt, prefix)
	if idx < 0 {
		return "", false
	}
	rest := prompt[idx+len(prefix):]
	if end := strings.Index(rest, "\n"); end >= 0 {
		rest = rest[:end]
	}
	if end := strings.Index(rest, stop); end >= 0 {
		rest = rest[:end]
	}
	value := strings.TrimSpace(rest)
	return value, value != ""
}
