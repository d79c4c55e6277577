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

package tracegate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"dirpx.dev/faults"
	"github.com/stretchr/testify/assert"
)

func TestShouldIncludeTrace(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		values  []string
		want    bool
	}{
		{"enabled and true", true, []string{"true"}, true},
		{"disabled and true", false, []string{"true"}, false},
		{"missing", true, nil, false},
		{"empty value", true, []string{""}, false},
		{"capitalized", true, []string{"True"}, false},
		{"upper", true, []string{"TRUE"}, false},
		{"one", true, []string{"1"}, false},
		{"padded", true, []string{" true"}, false},
		{"first value wins (false first)", true, []string{"false", "true"}, false},
		{"first value wins (true first)", true, []string{"true", "false"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIncludeTrace(tt.enabled, tt.values))
		})
	}
}

func TestFromQuery(t *testing.T) {
	q, err := url.ParseQuery("trace=true&trace=false&other=1")
	assert.NoError(t, err)
	assert.True(t, FromQuery(true, q))
	assert.False(t, FromQuery(false, q))
	assert.False(t, FromQuery(true, url.Values{}))
}

func TestRender_FaultWithStackAndCause(t *testing.T) {
	root := errors.New("connection reset")
	f := faults.Wrap(root, "ledger write failed")

	out := Render(fmt.Errorf("withdraw: %w", f))

	assert.True(t, strings.HasPrefix(out, "*fmt.wrapError: withdraw: unclassified: ledger write failed"), out)
	assert.Contains(t, out, "\n\tat ")
	assert.Contains(t, out, "TestRender_FaultWithStackAndCause")
	assert.Contains(t, out, "caused by: *faults.Fault: unclassified: ledger write failed")
	assert.Contains(t, out, "caused by: *errors.errorString: connection reset")
}

func TestRender_PlainAndPanicking(t *testing.T) {
	assert.Equal(t, "", Render(nil))
	assert.Equal(t, "*errors.errorString: boom", Render(errors.New("boom")))
	assert.Equal(t, "tracegate.panicky: <Error() panicked>", Render(panicky{}))
}

func TestRender_NilFaultAndPanickingUnwrap(t *testing.T) {
	var f *faults.Fault
	assert.Equal(t, "*faults.Fault: <nil>", Render(f))

	out := Render(fmt.Errorf("load: %w", brokenChain{}))
	assert.Equal(t, "*fmt.wrapError: load: broken\ncaused by: tracegate.brokenChain: broken", out)
}

type brokenChain struct{}

func (brokenChain) Error() string { return "broken" }
func (brokenChain) Unwrap() error { panic("unwrap") }

type panicky struct{}

func (panicky) Error() string { panic("boom") }
