/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads process configuration once at startup.
//
// Values come from FAULTS_-prefixed environment variables, then an optional
// YAML file, then defaults. The result is validated and never re-read.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FAULTS"

// Config is the process configuration.
type Config struct {
	// Mode is the gin mode; it also picks the logger flavor.
	Mode string `mapstructure:"MODE" validate:"oneof=debug release test"`

	// Addr is the HTTP listen address.
	Addr string `mapstructure:"ADDR" validate:"required"`

	// ExceptionTrace is the process-wide trace switch. Callers still have to
	// opt in per request.
	ExceptionTrace bool `mapstructure:"EXCEPTION_TRACE"`

	// ResolveTimeout bounds message resolution per fault.
	ResolveTimeout time.Duration `mapstructure:"RESOLVE_TIMEOUT" validate:"gte=0"`

	// FallbackMessage is the last-resort response message.
	FallbackMessage string `mapstructure:"FALLBACK_MESSAGE" validate:"required"`

	// Messages overrides catalog texts, keyed by message key prefix. It is
	// only read from the config file.
	Messages map[string]string `mapstructure:"MESSAGES"`

	// AuthToken protects the demo wallet API.
	AuthToken string `mapstructure:"AUTH_TOKEN" validate:"required"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var defaults = map[string]any{
	"MODE":             gin.ReleaseMode,
	"ADDR":             ":8080",
	"EXCEPTION_TRACE":  false,
	"RESOLVE_TIMEOUT":  100 * time.Millisecond,
	"FALLBACK_MESSAGE": "An unexpected error occurred",
	"SHUTDOWN_TIMEOUT": 10 * time.Second,
}

// Load reads the configuration. file is an optional YAML path; an empty
// path or a missing file is not an error, a malformed one is.
func Load(file string) (*Config, error) {
	// Message keys contain dots, so viper's default key delimiter would
	// split them into nested maps.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: read %s: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := bindEnv(v, &cfg); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// bindEnv binds every mapstructure key so Unmarshal sees environment-only
// values.
func bindEnv(v *viper.Viper, cfg any) error {
	t := reflect.TypeOf(cfg).Elem()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		if err := v.BindEnv(tag); err != nil {
			return fmt.Errorf("config: bind %s: %w", tag, err)
		}
	}
	return nil
}
