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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/category"
	"dirpx.dev/faults/logging"
	"dirpx.dev/faults/msgkey"
	"dirpx.dev/faults/tracegate"
)

// ErrResolverPanic is reported in the log record when the resolver panics.
var ErrResolverPanic = errors.New("dispatch: resolver panicked")

// Result is the outcome of one Dispatch.
type Result struct {
	Response *apis.ErrorResponse
	Rule     string
	Category category.Category
	Severity zapcore.Level
}

// Dispatcher is an immutable, concurrency-safe fault classifier.
type Dispatcher struct {
	logger          *zap.Logger
	resolver        apis.Resolver
	rules           []Rule
	passThrough     Rule
	trace           bool
	timeout         time.Duration
	fallbackMessage string
	metrics         *metrics
}

// New builds a Dispatcher. A nil logger discards records; a nil resolver
// makes every message the fault's own text.
//
// Build steps:
//
//  1. seed the registry with user rules followed by DefaultRules;
//  2. apply status overrides;
//  3. validate every rule;
//  4. register metrics when requested.
func New(logger *zap.Logger, resolver apis.Resolver, opts ...Option) (*Dispatcher, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := make([]Rule, 0, len(b.extra)+8)
	rules = append(rules, b.extra...)
	rules = append(rules, DefaultRules()...)

	for c, status := range b.overrides {
		if c == category.PassThrough {
			return nil, fmt.Errorf("dispatch: pass-through status cannot be overridden")
		}
		if !c.Known() {
			return nil, fmt.Errorf("dispatch: override: %w: %q", category.ErrCategoryUnknown, c)
		}
		if !validStatus(status) {
			return nil, fmt.Errorf("dispatch: override for %q: invalid status %d", c, status)
		}
		for i := range rules {
			if rules[i].Category == c {
				rules[i].Status = status
			}
		}
	}

	var pt Rule
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("dispatch: rule %d: %w", i, err)
		}
		if r.Category == category.PassThrough && pt.Name == "" {
			pt = r
		}
	}

	m, err := newMetrics(b.registerer)
	if err != nil {
		return nil, fmt.Errorf("dispatch: metrics: %w", err)
	}

	return &Dispatcher{
		logger:          logger,
		resolver:        resolver,
		rules:           rules,
		passThrough:     pt,
		trace:           b.trace,
		timeout:         b.timeout,
		fallbackMessage: b.fallbackMessage,
		metrics:         m,
	}, nil
}

// Rules returns a copy of the registry in evaluation order.
func (d *Dispatcher) Rules() []Rule {
	return append([]Rule(nil), d.rules...)
}

// TraceEnabled reports the process-wide trace switch.
func (d *Dispatcher) TraceEnabled() bool { return d.trace }

// Dispatch classifies in, builds the response and writes exactly one log
// record. query is the request's query string; only its "trace" values are
// read. Dispatch never panics on a misbehaving error or resolver.
func (d *Dispatcher) Dispatch(ctx context.Context, in Input, query url.Values) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	rule, status, link := d.classify(in)

	resp := apis.NewErrorResponse(status, "")
	if rule.Fields != nil {
		for _, fe := range rule.Fields(link) {
			resp.AddValidationError(fe.Field, fe.Message)
		}
	}

	var resolveErrs []error
	text, err := d.resolve(ctx, rule.Key, link)
	if err != nil {
		resolveErrs = append(resolveErrs, err)
	}
	resp.Message = d.message(rule, text, link, status)

	detail := tracegate.Render(in.Err)
	if tracegate.FromQuery(d.trace, query) {
		resp.SetTrace(detail)
	}

	severity := rule.severityFor(status)

	logText, err := d.resolve(ctx, rule.LogKey, link)
	if err != nil {
		resolveErrs = append(resolveErrs, err)
	}
	if logText == "" {
		logText = string(rule.LogKey)
	}
	if logText == "" {
		logText = rule.Name
	}

	fields := make([]zap.Field, 0, 8)
	fields = append(fields,
		zap.String("rule", rule.Name),
		zap.String("category", rule.Category.String()),
		zap.Int("status", status),
		zap.String("message", resp.Message),
		zap.String("error", faults.SafeError(in.Err)),
		zap.String("fault", detail),
	)
	if n := len(resp.Errors); n > 0 {
		fields = append(fields, zap.Int("field_errors", n))
	}
	if details := safeDetails(in.Err); len(details) > 0 {
		fields = append(fields, zap.Any("details", details))
	}
	if len(resolveErrs) > 0 {
		fields = append(fields, zap.NamedError("resolve_error", errors.Join(resolveErrs...)))
	}
	fields = append(fields, logging.Fields(ctx)...)
	d.logger.Log(severity, logText, fields...)

	d.metrics.observe(rule.Category, status)

	return Result{
		Response: resp,
		Rule:     rule.Name,
		Category: rule.Category,
		Severity: severity,
	}
}

// classify picks the rule, the final status and the matched link.
func (d *Dispatcher) classify(in Input) (Rule, int, error) {
	if in.passThrough() && d.passThrough.Name != "" {
		return d.passThrough, in.Status, in.Err
	}
	for _, r := range d.rules {
		link, ok := safeMatch(r.Match, in.Err)
		if !ok {
			continue
		}
		status := r.Status
		if status == 0 {
			status = carriedStatus(link)
		}
		if !validStatus(status) {
			continue
		}
		return r, status, link
	}
	// Unreachable while the unclassified rule closes the registry.
	r := unclassifiedRule()
	return r, r.Status, in.Err
}

// message picks the response text: resolved text, the rule's default, the
// fault's own message, the status text for pass-through, then the global
// fallback.
func (d *Dispatcher) message(r Rule, resolved string, link error, status int) string {
	if resolved != "" {
		return resolved
	}
	if r.DefaultMessage != "" {
		return r.DefaultMessage
	}
	if raw := faults.MessageOf(link); raw != "" {
		return raw
	}
	if r.Status == 0 {
		if t := http.StatusText(status); t != "" {
			return t
		}
	}
	return d.fallbackMessage
}

// resolve calls the resolver for key, bounded by the configured timeout.
// An empty key or a nil resolver yields "" without error.
func (d *Dispatcher) resolve(ctx context.Context, key msgkey.Key, fault error) (string, error) {
	if d.resolver == nil || key == msgkey.Empty {
		return "", nil
	}
	if d.timeout <= 0 {
		return safeResolve(ctx, d.resolver, key, fault)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := safeResolve(ctx, d.resolver, key, fault)
		ch <- outcome{text, err}
	}()

	select {
	case o := <-ch:
		return o.text, o.err
	case <-ctx.Done():
		return "", fmt.Errorf("resolve %q: %w", key, ctx.Err())
	}
}

func safeResolve(ctx context.Context, r apis.Resolver, key msgkey.Key, fault error) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: key %q: %v", ErrResolverPanic, key, p)
		}
	}()
	return r.Resolve(ctx, key, fault)
}

func safeMatch(m Matcher, err error) (link error, ok bool) {
	defer func() {
		if recover() != nil {
			link, ok = nil, false
		}
	}()
	return m(err)
}

func safeDetails(err error) (details map[string]any) {
	defer func() {
		if recover() != nil {
			details = nil
		}
	}()
	if f, ok := faults.As(err); ok {
		return f.Details
	}
	return nil
}
