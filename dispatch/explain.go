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
	"strings"

	"dirpx.dev/faults"
)

// Explain returns a textual trace of how err would be classified: every
// rule tried in order, up to and including the one that matches. Nothing is
// logged and the resolver is not called.
//
// Example output:
//
//	error="lookup: not_found: account 42" type=*fmt.wrapError
//	rule[0] pass_through: skip
//	rule[1] validation_failed: skip
//	rule[2] not_found: match link=*faults.Fault -> status=404 key="error.not_found" log_key="log.not_found" severity=error
func (d *Dispatcher) Explain(err error) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "error=%q type=%T\n", faults.SafeError(err), err)

	for i, r := range d.rules {
		link, ok := safeMatch(r.Match, err)
		if !ok {
			_, _ = fmt.Fprintf(&b, "rule[%d] %s: skip\n", i, r.Name)
			continue
		}
		status, src := r.Status, ""
		if status == 0 {
			status, src = carriedStatus(link), " (carried)"
		}
		if !validStatus(status) {
			_, _ = fmt.Fprintf(&b, "rule[%d] %s: skip (no usable status)\n", i, r.Name)
			continue
		}
		_, _ = fmt.Fprintf(&b, "rule[%d] %s: match link=%T -> status=%d%s key=%q log_key=%q severity=%s\n",
			i, r.Name, link, status, src, r.Key, r.LogKey, r.severityFor(status))
		break
	}
	return strings.TrimSuffix(b.String(), "\n")
}
