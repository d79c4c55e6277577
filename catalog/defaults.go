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

package catalog

import "dirpx.dev/faults/msgkey"

// Default texts. Response keys for single-message categories echo the
// fault's own message; log keys describe the event for operators.
var defaultTexts = map[msgkey.Key]string{
	msgkey.ErrorValidation:         "Validation failed",
	msgkey.ErrorNotFound:           "{message}",
	msgkey.ErrorAlreadyExists:      "{message}",
	msgkey.ErrorPreconditionFailed: "{message}",
	msgkey.ErrorUnauthorized:       "{message}",
	msgkey.ErrorMalformed:          "{message}",
	msgkey.ErrorUnclassified:       "{message}",

	msgkey.LogMethodArgument:      "Method argument validation failed",
	msgkey.LogNotFound:            "Requested resource not found",
	msgkey.LogAlreadyExists:       "Resource already exists",
	msgkey.LogPreconditionFailed:  "Precondition failed",
	msgkey.LogUnauthorizedDetails: "Unauthorized request",
	msgkey.LogFieldValidation:     "Field validation failed",
	msgkey.LogPassThrough:         "Request rejected by transport",
	msgkey.LogUnclassified:        "Unhandled fault",
}

// Defaults returns a copy of the built-in texts.
func Defaults() map[msgkey.Key]string {
	out := make(map[msgkey.Key]string, len(defaultTexts))
	for k, v := range defaultTexts {
		out[k] = v
	}
	return out
}
