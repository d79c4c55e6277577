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

// Package category defines the closed fault taxonomy used by the dispatcher.
//
// A "category" is the internal classification assigned to a fault, such as
// "not_found", "conflict" or "unclassified". It drives the transport status,
// the message key and the log severity, and it is never sent to callers.
// Categories are:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated (not dash-separated);
//   - suitable for use as metric labels and log fields.
//
// IMPORTANT: Empty categories ("") are NOT valid. A fault without a category
// is treated as Unclassified by the dispatcher.
package category
