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

// FieldError is a single field-level validation failure.
//
// Field carries the logical path to the failing field as the client sent it
// (e.g. "email" or "owner.name"). Message is the human-readable explanation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
