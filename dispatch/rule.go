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

package dispatch

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/category"
	"dirpx.dev/faults/msgkey"
)

// Rule maps one fault category to a status, message keys and a log
// severity.
type Rule struct {
	// Name identifies the rule in Explain output and Result.
	Name string

	// Category is reported in logs and metrics for errors this rule handles.
	Category category.Category

	// Match reports whether the rule handles err and returns the link of the
	// chain it matched. The link is what the resolver and Fields see.
	Match func(err error) (error, bool)

	// Status is the transport status. Zero means "use the status the error
	// carries" (apis.StatusCarrier); only pass-through rules leave it zero.
	Status int

	// Key is the response message key. Empty means the matched error's own
	// message is used without consulting the resolver.
	Key msgkey.Key

	// LogKey is the key of the log record's message.
	LogKey msgkey.Key

	// Severity is the level of the log record.
	Severity zapcore.Level

	// DefaultMessage replaces the matched error's own text as the first
	// fallback when the resolver yields nothing.
	DefaultMessage string

	// Fields extracts per-field failures. Nil for every single-message
	// category.
	Fields func(err error) []apis.FieldError
}

// validate reports whether r can be installed in a dispatcher.
func (r Rule) validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule has no name")
	}
	if r.Match == nil {
		return fmt.Errorf("rule %q has no matcher", r.Name)
	}
	if !r.Category.Known() {
		return fmt.Errorf("rule %q: %w: %q", r.Name, category.ErrCategoryUnknown, r.Category)
	}
	if r.Status == 0 && r.Category != category.PassThrough {
		return fmt.Errorf("rule %q: only pass-through rules may leave the status unset", r.Name)
	}
	if r.Status != 0 && !validStatus(r.Status) {
		return fmt.Errorf("rule %q: invalid status %d", r.Name, r.Status)
	}
	if r.Key != msgkey.Empty {
		if err := msgkey.Validate(r.Key); err != nil {
			return fmt.Errorf("rule %q: key: %w", r.Name, err)
		}
	}
	if r.LogKey != msgkey.Empty {
		if err := msgkey.Validate(r.LogKey); err != nil {
			return fmt.Errorf("rule %q: log key: %w", r.Name, err)
		}
	}
	return nil
}

// severityFor returns the log level for a response with status. Rules that
// carry the status upstream escalate server errors to error level.
func (r Rule) severityFor(status int) zapcore.Level {
	if r.Status == 0 && status >= 500 && r.Severity < zapcore.ErrorLevel {
		return zapcore.ErrorLevel
	}
	return r.Severity
}

func validStatus(s int) bool { return s >= 100 && s <= 599 }
