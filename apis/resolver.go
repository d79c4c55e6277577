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

import (
	"context"

	"dirpx.dev/faults/msgkey"
)

// Resolver turns a message key, with the fault as context, into
// human-readable text.
//
// Implementations are expected to be fast and non-blocking. They may fail or
// return an empty string; callers must tolerate both and fall back to the
// fault's raw text.
type Resolver interface {
	Resolve(ctx context.Context, key msgkey.Key, fault error) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(ctx context.Context, key msgkey.Key, fault error) (string, error)

// Resolve calls f(ctx, key, fault).
func (f ResolverFunc) Resolve(ctx context.Context, key msgkey.Key, fault error) (string, error) {
	return f(ctx, key, fault)
}
