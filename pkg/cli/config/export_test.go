package config

import "time"

func NewLLMForTest(provider, geminiProject, openaiAPIKey string) *LLM {
	return &LLM{
		provider:       provider,
		geminiProject:  geminiProject,
		geminiLocation: "us-central1",
		openaiAPIKey:   openaiAPIKey,
	}
}

func NewRepositoryForTest(backend, fileDir string) *Repository {
	return &Repository{
		backend: backend,
		fileDir: fileDir,
	}
}

func NewDialogForTest(timezone string, factTopK int, localePath, ttsURL string) *Dialog {
	return &Dialog{
		timezone:   timezone,
		factTopK:   factTopK,
		localePath: localePath,
		ttsURL:     ttsURL,
		ttsTimeout: time.Second,
	}
}

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

func NewSentryForTest(dsn string) *Sentry {
	return &Sentry{dsn: dsn}
}
