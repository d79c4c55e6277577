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

// Package catalog is an in-memory apis.Resolver.
//
// Entries are keyed by dotted message keys and looked up by longest
// dotted-prefix match, so a single "error.not_found" entry serves
// "error.not_found.account" too, and "*" matches exactly one segment:
//
//	cat, err := catalog.New(
//	    catalog.WithMessage("error.not_found.account", "No such account: {message}"),
//	)
//
// Texts may contain two placeholders, replaced at resolve time:
//
//	{message}  the fault's own message
//	{type}     the fault's category name
//
// A Catalog is immutable after New and safe for concurrent use. Storage,
// reloading and localization are left to richer resolvers implementing the
// same contract.
package catalog
