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

// Package logging builds the process logger and carries request-scoped
// fields through a context.Context.
package logging

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for the given gin mode. Release mode gets the JSON
// production config writing to stdout; every other mode gets the colored
// development config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	if mode == gin.ReleaseMode {
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build(zap.AddStacktrace(zap.DPanicLevel))
}

type fieldsKey struct{}

// WithFields returns a copy of ctx carrying fields in addition to any it
// already carries.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	prev := Fields(ctx)
	merged := make([]zap.Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// Fields returns the fields stored on ctx. The result must not be modified.
func Fields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	fs, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	return fs
}

// From returns logger enriched with the fields stored on ctx.
func From(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if fs := Fields(ctx); len(fs) > 0 {
		return logger.With(fs...)
	}
	return logger
}
