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

package apis

import "encoding/json"

// ErrorResponse is the uniform error body returned to callers.
//
// It is constructed fresh per failed request, mutated only by appends while
// being built, and treated as immutable once handed to a transport writer.
//
// Wire shape:
//
//	{
//	  "status":  422,
//	  "message": "Validation failed",
//	  "errors":  [{"field": "email", "message": "..."}],
//	  "trace":   "..."            // only when the trace gate allowed it
//	}
type ErrorResponse struct {
	// Status is the transport status. It is never zero and always equals the
	// status written on the wire.
	Status int `json:"status"`

	// Message is a human-readable summary. It is never empty.
	Message string `json:"message"`

	// Errors holds field-level failures in report order. Duplicated fields
	// are kept.
	Errors []FieldError `json:"errors"`

	// Trace holds the diagnostic detail. nil means "absent"; a non-nil pointer
	// is always serialized, even when it points to "".
	Trace *string `json:"trace,omitempty"`
}

// NewErrorResponse returns a response with the given status and message and
// an empty (non-nil) errors list.
func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  status,
		Message: message,
		Errors:  []FieldError{},
	}
}

// AddValidationError appends one field error. It never merges or replaces
// existing entries.
func (r *ErrorResponse) AddValidationError(field, message string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message})
}

// SetTrace attaches diagnostic detail unconditionally. Gating is the
// caller's job.
func (r *ErrorResponse) SetTrace(text string) {
	r.Trace = &text
}

// TraceText returns the trace and whether it is present.
func (r *ErrorResponse) TraceText() (string, bool) {
	if r == nil || r.Trace == nil {
		return "", false
	}
	return *r.Trace, true
}

// MarshalJSON keeps "errors" an array even on a zero-value response.
func (r ErrorResponse) MarshalJSON() ([]byte, error) {
	type plain ErrorResponse
	if r.Errors == nil {
		r.Errors = []FieldError{}
	}
	return json.Marshal(plain(r))
}
