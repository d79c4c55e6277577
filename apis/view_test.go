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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_JSONShape_NoTrace(t *testing.T) {
	r := NewErrorResponse(404, "account 7 not found")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":404,"message":"account 7 not found","errors":[]}`, string(b))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	_, hasTrace := raw["trace"]
	assert.False(t, hasTrace, "trace must be omitted, not null")
}

func TestErrorResponse_ZeroValueStillEmitsErrorsArray(t *testing.T) {
	b, err := json.Marshal(ErrorResponse{Status: 500, Message: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":500,"message":"boom","errors":[]}`, string(b))
}

func TestErrorResponse_AddValidationError_KeepsOrderAndDuplicates(t *testing.T) {
	r := NewErrorResponse(422, "Validation failed")
	r.AddValidationError("email", "must be a well-formed email address")
	r.AddValidationError("name", "must not be blank")
	r.AddValidationError("email", "must not be blank")

	require.Len(t, r.Errors, 3)
	assert.Equal(t, []FieldError{
		{Field: "email", Message: "must be a well-formed email address"},
		{Field: "name", Message: "must not be blank"},
		{Field: "email", Message: "must not be blank"},
	}, r.Errors)
}

func TestErrorResponse_SetTrace(t *testing.T) {
	r := NewErrorResponse(500, "boom")
	_, ok := r.TraceText()
	assert.False(t, ok)

	r.SetTrace("")
	text, ok := r.TraceText()
	assert.True(t, ok, "an explicitly set trace is present even when empty")
	assert.Empty(t, text)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":500,"message":"boom","errors":[],"trace":""}`, string(b))
}
