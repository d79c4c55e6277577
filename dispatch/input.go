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

// Input is what reaches the dispatcher: an error to classify, or an error
// whose transport status was already decided upstream (a framework-generated
// 404 or 405, an unreadable body). Both branches end in the same response
// shape.
type Input struct {
	Err error

	// Status, when a valid HTTP status, marks the input as pass-through and
	// is written unchanged.
	Status int
}

// Classify returns an Input whose rule is chosen from err.
func Classify(err error) Input { return Input{Err: err} }

// PassThrough returns an Input that keeps status. err may be nil.
func PassThrough(status int, err error) Input { return Input{Err: err, Status: status} }

func (in Input) passThrough() bool { return validStatus(in.Status) }
