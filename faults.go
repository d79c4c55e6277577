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

// Package faults provides the canonical fault type consumed by the
// dispatcher and a set of constructors for the closed fault taxonomy.
//
// Request-handling code returns a *Fault (or any error wrapping one); the
// dispatcher classifies it, shapes the uniform ErrorResponse and writes
// exactly one log record for it.
package faults

import (
	"errors"
	"fmt"
	"net/http"

	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/category"
)

// ErrInsufficientFunds is the cause attached by InsufficientFunds, so callers
// can test for it with errors.Is while the fault itself stays a
// precondition failure.
var ErrInsufficientFunds = errors.New("insufficient funds")

// DefaultValidationMessage is the message used by Validation.
const DefaultValidationMessage = "validation failed"

// Fault is the canonical rich fault type.
//
// It carries:
//   - Category: the classification that drives status, message and severity;
//   - Message: the fault's own human-readable text;
//   - Status: a transport status carried through unchanged (PassThrough only);
//   - Fields: per-field validation failures (Validation only);
//   - Details: arbitrary key/value payload for logs;
//   - Cause: wrapped underlying error.
//
// All mutation helpers (WithX) return a shallow copy, so Fault values can be
// shared across goroutines.
type Fault struct {
	Category category.Category
	Message  string
	Status   int
	Fields   []apis.FieldError
	Details  map[string]any
	Cause    error

	stack []uintptr
}

var (
	_ apis.CategorizedError = (*Fault)(nil)
	_ apis.FieldedError     = (*Fault)(nil)
	_ apis.StatusCarrier    = (*Fault)(nil)
)

// E is the general constructor. It records the caller's stack and applies
// opts in order.
//
//	return faults.E(category.NotFound, "account 42 not found",
//	    faults.WithDetailOption("account_id", 42),
//	)
func E(c category.Category, msg string, opts ...Option) *Fault {
	f := newFault(c, msg)
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

// Validation returns a field-validation fault carrying fields in the given
// order.
func Validation(fields ...apis.FieldError) *Fault {
	f := newFault(category.Validation, DefaultValidationMessage)
	if len(fields) > 0 {
		f.Fields = append([]apis.FieldError(nil), fields...)
	}
	return f
}

// NotFound returns a resource-not-found fault.
func NotFound(msg string) *Fault {
	return newFault(category.NotFound, msg)
}

// AlreadyExists returns a conflict fault for a clashing unique key.
func AlreadyExists(msg string) *Fault {
	return newFault(category.Conflict, msg)
}

// Conflict returns a generic conflict fault.
func Conflict(msg string) *Fault {
	return newFault(category.Conflict, msg)
}

// PreconditionFailed returns a fault for a business precondition that does
// not hold.
func PreconditionFailed(msg string) *Fault {
	return newFault(category.PreconditionFailed, msg)
}

// InsufficientFunds is a PreconditionFailed fault whose cause is
// ErrInsufficientFunds.
func InsufficientFunds(msg string) *Fault {
	f := newFault(category.PreconditionFailed, msg)
	f.Cause = ErrInsufficientFunds
	return f
}

// Unauthorized returns an authentication fault.
func Unauthorized(msg string) *Fault {
	return newFault(category.Unauthorized, msg)
}

// Malformed returns a request-shape or constraint-violation fault. It holds
// a single message; use Validation for per-field failures.
func Malformed(msg string) *Fault {
	return newFault(category.Malformed, msg)
}

// WithStatus returns a pass-through fault carrying status. An empty msg is
// replaced by the standard status text.
func WithStatus(status int, msg string) *Fault {
	if msg == "" {
		msg = http.StatusText(status)
	}
	f := newFault(category.PassThrough, msg)
	f.Status = status
	return f
}

// Wrap returns an unclassified fault around err, recording the caller's
// stack. It returns nil for a nil err.
func Wrap(err error, msg string) *Fault {
	if err == nil {
		return nil
	}
	f := newFault(category.Unclassified, msg)
	f.Cause = err
	return f
}

func newFault(c category.Category, msg string) *Fault {
	return &Fault{Category: c, Message: msg, stack: callers(2)}
}

// Error implements the built-in error interface.
//
// The format is "<category>: <message>", followed by ": <cause>" when a
// cause is attached.
func (f *Fault) Error() string {
	if f == nil {
		return "<nil>"
	}
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Category, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (f *Fault) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Cause
}

// FaultCategory implements apis.CategorizedError.
func (f *Fault) FaultCategory() category.Category {
	if f == nil {
		return category.Empty
	}
	return f.Category
}

// FieldErrors implements apis.FieldedError. The returned slice is a copy.
func (f *Fault) FieldErrors() []apis.FieldError {
	if f == nil || len(f.Fields) == 0 {
		return nil
	}
	return append([]apis.FieldError(nil), f.Fields...)
}

// HTTPStatus implements apis.StatusCarrier. Only pass-through faults carry a
// status; every other category reports 0.
func (f *Fault) HTTPStatus() int {
	if f == nil || f.Category != category.PassThrough {
		return 0
	}
	return f.Status
}

// WithMessage returns a shallow copy of f with a replaced message.
func (f *Fault) WithMessage(msg string) *Fault {
	cp := *f
	cp.Message = msg
	return &cp
}

// WithField returns a shallow copy of f with one more field error appended.
// The Fields slice is always copied, so f is never modified.
func (f *Fault) WithField(field, msg string) *Fault {
	cp := *f
	fields := make([]apis.FieldError, 0, len(f.Fields)+1)
	fields = append(fields, f.Fields...)
	cp.Fields = append(fields, apis.FieldError{Field: field, Message: msg})
	return &cp
}

// WithDetail returns a shallow copy of f with one extra key/value in Details.
func (f *Fault) WithDetail(k string, v any) *Fault {
	cp := *f
	m := make(map[string]any, len(f.Details)+1)
	for k0, v0 := range f.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of f with kv merged into Details; kv
// wins on key conflicts.
func (f *Fault) WithDetails(kv map[string]any) *Fault {
	if len(kv) == 0 {
		return f
	}
	cp := *f
	m := make(map[string]any, len(f.Details)+len(kv))
	for k0, v0 := range f.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of f with err attached as its cause.
// A nil err returns f unchanged.
func (f *Fault) WithCause(err error) *Fault {
	if err == nil {
		return f
	}
	cp := *f
	cp.Cause = err
	return &cp
}

// As returns the outermost *Fault in err's chain.
func As(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}

// CategoryOf returns the category of the outermost categorized error in
// err's chain, or category.Unclassified when there is none.
func CategoryOf(err error) category.Category {
	var ce apis.CategorizedError
	if errors.As(err, &ce) {
		if c := ce.FaultCategory(); c.Known() {
			return c
		}
	}
	return category.Unclassified
}

// MessageOf returns the fault's own message: Message for a *Fault, Error()
// for anything else. A nil *Fault or a panicking Error method yields "".
func MessageOf(err error) string {
	if f, ok := err.(*Fault); ok {
		if f == nil {
			return ""
		}
		return f.Message
	}
	return SafeError(err)
}

// SafeError returns err.Error(), or "" when err is nil or Error panics.
func SafeError(err error) (s string) {
	if err == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return err.Error()
}
