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

package category

// The closed taxonomy. Order here is documentation only; the dispatcher owns
// precedence.
const (
	// Validation marks a field-validation failure carrying one or more
	// per-field errors. Every field error is surfaced to the caller.
	//
	// Maps to HTTP 422.
	Validation Category = "validation_failed"

	// NotFound marks a lookup of a resource that does not exist (or is not
	// visible to the caller).
	//
	// Maps to HTTP 404.
	NotFound Category = "not_found"

	// Conflict marks a creation or update clashing with existing state, e.g. a
	// unique key that is already taken.
	//
	// Maps to HTTP 409.
	Conflict Category = "conflict"

	// PreconditionFailed marks a business precondition that does not hold,
	// e.g. insufficient funds for a withdrawal.
	//
	// Maps to HTTP 412.
	PreconditionFailed Category = "precondition_failed"

	// Unauthorized marks a failed or missing authentication.
	//
	// Maps to HTTP 401.
	Unauthorized Category = "unauthorized"

	// Malformed marks request-shape or constraint violations that were not
	// caught by field validation (bad JSON, out-of-range path values, DB
	// check constraints). Unlike Validation it carries a single message.
	//
	// Maps to HTTP 400 and is logged at warn.
	Malformed Category = "malformed_request"

	// PassThrough marks a fault that already carries a transport status
	// (e.g. 405 produced by the router). The status is kept as-is.
	PassThrough Category = "pass_through"

	// Unclassified is the fallback for anything else.
	//
	// Maps to HTTP 500.
	Unclassified Category = "unclassified"
)

var all = []Category{
	Validation,
	NotFound,
	Conflict,
	PreconditionFailed,
	Unauthorized,
	Malformed,
	PassThrough,
	Unclassified,
}

// All returns a copy of the closed taxonomy.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}
