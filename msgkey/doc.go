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

// Package msgkey provides parsing, normalization and validation for message
// keys handed to a message resolver.
//
// Keys are dot-separated hierarchical identifiers such as "error.not_found"
// or "log.unauthorized_details". A resolver may answer a deep key like
// "error.not_found.account" with the text registered for "error.not_found",
// so keys are kept to a small, fixed depth and a strict charset.
package msgkey
