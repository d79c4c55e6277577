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

import "dirpx.dev/faults/category"

// CategorizedError is implemented by faults that know their own category.
//
// The dispatcher uses it to match the specific rule for a fault without
// depending on the concrete type. Implementations should return a value from
// the closed taxonomy; anything else is treated as unclassified.
type CategorizedError interface {
	error

	// FaultCategory returns the category of this fault.
	FaultCategory() category.Category
}

// FieldedError represents an error that carries zero or more field-level
// validation failures. Every entry must be surfaced to the caller, in the
// order returned.
//
// Implementations SHOULD return a slice that the caller may iterate freely;
// returning nil means "no field errors".
type FieldedError interface {
	error

	// FieldErrors returns the field errors in the order they were reported.
	FieldErrors() []FieldError
}

// StatusCarrier represents a fault that already carries a transport status,
// e.g. 405 produced by the router before any handler ran. Such faults are
// wrapped in the uniform response shape with their status untouched.
//
// A return value <= 0 means "no status carried".
type StatusCarrier interface {
	error

	// HTTPStatus returns the carried transport status.
	HTTPStatus() int
}
