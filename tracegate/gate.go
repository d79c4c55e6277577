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

// Package tracegate decides whether diagnostic detail may be returned to a
// caller and renders that detail.
//
// Exposure needs two independent signals: a process-wide switch read once at
// startup (default off) and an explicit per-request opt-in, the literal
// query value trace=true. Logs are not affected by the gate.
package tracegate

import "net/url"

// Param is the query parameter (and gRPC metadata key) carrying the opt-in.
const Param = "trace"

// ShouldIncludeTrace reports whether a trace may be attached. values are the
// request's values for Param in arrival order; only the first one counts and
// it must be exactly "true".
func ShouldIncludeTrace(configEnabled bool, values []string) bool {
	if !configEnabled || len(values) == 0 {
		return false
	}
	return values[0] == "true"
}

// FromQuery applies ShouldIncludeTrace to the Param values of q.
func FromQuery(configEnabled bool, q url.Values) bool {
	return ShouldIncludeTrace(configEnabled, q[Param])
}
