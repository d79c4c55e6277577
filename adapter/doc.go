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

// Package adapter converts errors produced by third-party frameworks into
// *faults.Fault values the dispatcher understands.
//
// Each converter keeps the original error as the fault's cause, so the
// rendered trace and the operator log still show where it came from.
//
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    _ = c.Error(adapter.FromBinding(err))
//	    return
//	}
//
// Converters return nil for a nil error and leave errors that are already
// faults untouched.
package adapter
