package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DECKIFY_SERVER_URL
const EnvPrefix = "DECKIFY"

// Environment keys, without the prefix
const (
	EnvServerURL         = "server_url"
	EnvTimeout           = "timeout"
	EnvInactivityTimeout = "inactivity_timeout"
	EnvLogLevel          = "log_level"
	EnvSaveDir           = "save_dir"
)

// Env holds overrides read from the environment. Unset values stay empty/nil.
type Env struct {
	ServerURL         string
	Timeout           *time.Duration
	InactivityTimeout *time.Duration
	LogLevel          string
	SaveDir           string
}

// LoadEnv reads DECKIFY_* variables
func LoadEnv() (*Env, error) {
	v := viper.New()
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	env := &Env{
		ServerURL: strings.TrimSpace(v.GetString(EnvServerURL)),
		LogLevel:  strings.TrimSpace(v.GetString(EnvLogLevel)),
		SaveDir:   strings.TrimSpace(v.GetString(EnvSaveDir)),
	}

	var err error
	if env.Timeout, err = durationFrom(v, EnvTimeout); err != nil {
		return nil, err
	}
	if env.InactivityTimeout, err = durationFrom(v, EnvInactivityTimeout); err != nil {
		return nil, err
	}
	return env, nil
}

// envBindings maps config keys to the environment variables that provide them
var envBindings = map[string]string{
	EnvServerURL:         envName(EnvServerURL),
	EnvTimeout:           envName(EnvTimeout),
	EnvInactivityTimeout: envName(EnvInactivityTimeout),
	EnvLogLevel:          envName(EnvLogLevel),
	EnvSaveDir:           envName(EnvSaveDir),
}

func bindEnvs(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

// durationFrom accepts Go durations ("90s", "2m") or plain seconds ("300")
func durationFrom(v *viper.Viper, key string) (*time.Duration, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	d, err := ParseDuration(v.GetString(key))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envName(key), err)
	}
	return &d, nil
}

// ParseDuration parses a Go duration or a whole number of seconds
func ParseDuration(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	if seconds, err := strconv.Atoi(text); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative duration %q", text)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", text)
	}
	return d, nil
}
