// Package config loads launch settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const envPrefix = "CEMETERY_"

// Config holds launch settings. Gameplay tuning lives in the prefabs.
type Config struct {
	LogLevel         string  `validate:"oneof=debug info warn error"`
	LogFormat        string  `validate:"oneof=console json"`
	Level            string  `validate:"required"`
	Debug            bool
	WatchPrefabs     bool
	MouseSensitivity float64 `validate:"gt=0"`
	GamepadLookSpeed float64 `validate:"gt=0"`
}

var validate = validator.New()

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "console",
		Level:            "crypt",
		MouseSensitivity: 0.15,
		GamepadLookSpeed: 120,
	}
}

// Load reads .env files if present, then CEMETERY_* variables.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: load %s: %w", f, err)
			}
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key, def string) string {
		if v, ok := lookup(envPrefix + key); ok {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg.LogLevel = strings.ToLower(get("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(get("LOG_FORMAT", cfg.LogFormat))
	cfg.Level = get("LEVEL", cfg.Level)

	var err error
	if cfg.Debug, err = parseBool("DEBUG", get("DEBUG", "false")); err != nil {
		return nil, err
	}
	if cfg.WatchPrefabs, err = parseBool("WATCH_PREFABS", get("WATCH_PREFABS", "false")); err != nil {
		return nil, err
	}
	if cfg.MouseSensitivity, err = parseFloat("MOUSE_SENSITIVITY", get("MOUSE_SENSITIVITY", ""), cfg.MouseSensitivity); err != nil {
		return nil, err
	}
	if cfg.GamepadLookSpeed, err = parseFloat("GAMEPAD_LOOK_SPEED", get("GAMEPAD_LOOK_SPEED", ""), cfg.GamepadLookSpeed); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings after flags have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("config: %s failed %s: got %v", e.Field(), e.Tag(), e.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func parseBool(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s%s value %q: %w", envPrefix, key, v, err)
	}
	return b, nil
}

func parseFloat(key, v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s%s value %q: %w", envPrefix, key, v, err)
	}
	return f, nil
}
