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

// Package apis defines the public Go-level contracts shared by the fault
// dispatcher and its transport adapters.
//
// It holds small interfaces that faults may implement (category, per-field
// errors, carried transport status), the message resolver contract, and the
// wire view type ErrorResponse. HTTP and gRPC adapters, validators and
// business code can target this package without importing the dispatcher.
//
// This package must remain lightweight: interfaces and very small view types
// only.
package apis
