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
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/faults/category"
)

const (
	// DefaultResolveTimeout bounds each resolver call.
	DefaultResolveTimeout = 100 * time.Millisecond

	// DefaultFallbackMessage is the last-resort response message.
	DefaultFallbackMessage = "An unexpected error occurred"
)

// Option configures a Dispatcher at build time.
type Option func(*builder)

type builder struct {
	trace           bool
	extra           []Rule
	overrides       map[category.Category]int
	timeout         time.Duration
	fallbackMessage string
	registerer      prometheus.Registerer
}

func newBuilder() *builder {
	return &builder{
		overrides:       make(map[category.Category]int),
		timeout:         DefaultResolveTimeout,
		fallbackMessage: DefaultFallbackMessage,
	}
}

// WithTrace sets the process-wide trace switch. Even when on, a trace is
// only attached for requests that opt in.
func WithTrace(enabled bool) Option {
	return func(b *builder) { b.trace = enabled }
}

// WithRules installs extra rules ahead of the defaults, in the given order.
// Use it for application fault types that need their own status or key.
func WithRules(rules ...Rule) Option {
	return func(b *builder) { b.extra = append(b.extra, rules...) }
}

// WithStatusOverride replaces the status of every rule of category c.
// Pass-through statuses cannot be overridden.
func WithStatusOverride(c category.Category, status int) Option {
	return func(b *builder) { b.overrides[c] = status }
}

// WithResolveTimeout bounds each resolver call. A non-positive d disables
// the bound and calls the resolver inline.
func WithResolveTimeout(d time.Duration) Option {
	return func(b *builder) { b.timeout = d }
}

// WithFallbackMessage sets the message used when neither the resolver nor
// the fault supply any text. Empty values are ignored.
func WithFallbackMessage(msg string) Option {
	return func(b *builder) {
		if msg != "" {
			b.fallbackMessage = msg
		}
	}
}

// WithMetrics registers the dispatch counter with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(b *builder) { b.registerer = reg }
}
