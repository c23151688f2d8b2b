package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidLocale   = goerr.New("invalid locale")
	ErrInvalidBackend  = goerr.New("invalid repository backend")
	ErrInvalidProvider = goerr.New("invalid LLM provider")
	ErrMissingOption   = goerr.New("required option is missing")
)

// Context keys for error values
const (
	LocalePathKey = "locale_path"
	CategoryKey   = "category"
	RuleIndexKey  = "rule_index"
	BackendKey    = "backend"
	ProviderKey   = "provider"
	OptionKey     = "option"
)
