// Package config holds the resolved runtime configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults.
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout     = 60 * time.Second
	DefaultRecipeCount = 3
	DefaultLogFile     = ".geminichef-logs/geminichef.log"
)

// LogConfig controls where and how much is logged.
type LogConfig struct {
	Level  string `validate:"oneof=off normal verbose"`
	Format string `validate:"oneof=text json"`
	// File is the log destination. Empty means stderr.
	File string
}

// Config is the configuration of one run.
type Config struct {
	APIKey  string `validate:"required_without=Offline"`
	Model   string `validate:"required"`
	BaseURL string `validate:"required,url"`
	// Timeout bounds one generation call. Zero disables it.
	Timeout time.Duration `validate:"gte=0"`
	// RequestsPerMinute caps outbound calls. Zero disables the limiter.
	RequestsPerMinute int `validate:"gte=0"`
	RecipeCount       int `validate:"min=1,max=10"`
	// Temperature overrides the model's sampling temperature. Nil keeps
	// the API default.
	Temperature *float64 `validate:"omitempty,gte=0,lte=2"`
	// Offline serves built-in recipes instead of calling the API.
	Offline bool
	Log     LogConfig
}

// Default returns a Config with every default applied and no API key.
func Default() Config {
	return Config{
		Model:       DefaultModel,
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		RecipeCount: DefaultRecipeCount,
		Log: LogConfig{
			Level:  "normal",
			Format: "text",
			File:   DefaultLogFile,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required_without":
		return field + " is required unless running offline (set GEMINI_API_KEY or pass --offline)"
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fe.Value())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
