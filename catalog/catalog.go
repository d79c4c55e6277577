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

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/catalog/internal/segmenttrie"
	"dirpx.dev/faults/msgkey"
)

// ErrKeyNotFound is returned by Resolve when no entry matches the key.
var ErrKeyNotFound = errors.New("catalog: key not found")

// Placeholders understood by Resolve.
const (
	PlaceholderMessage = "{message}"
	PlaceholderType    = "{type}"
)

// Catalog is an immutable message table with longest-prefix lookup.
type Catalog struct {
	index *segmenttrie.Trie[string]
	size  int
}

var _ apis.Resolver = (*Catalog)(nil)

// New builds a Catalog from the built-in defaults and opts.
//
// Every key prefix is normalized and validated; the first invalid one aborts
// the build.
func New(opts ...Option) (*Catalog, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	texts := b.seed()
	idx := segmenttrie.New[string]()
	for prefix, text := range texts {
		if err := idx.Insert(prefix, text); err != nil {
			return nil, fmt.Errorf("catalog: cannot insert key prefix %q: %w", prefix, err)
		}
	}
	return &Catalog{index: idx, size: len(texts)}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// initialization with literal options.
func MustNew(opts ...Option) *Catalog {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return c.size }

// Lookup returns the raw text stored for the deepest prefix of key, without
// placeholder expansion.
func (c *Catalog) Lookup(key msgkey.Key) (string, bool) {
	text, _, ok := c.index.Match(key.String())
	return text, ok
}

// Resolve implements apis.Resolver. It looks up key, then expands the
// placeholders against fault. A nil fault expands both placeholders to "".
func (c *Catalog) Resolve(ctx context.Context, key msgkey.Key, fault error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := c.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if !strings.Contains(text, "{") {
		return text, nil
	}
	var typ string
	if fault != nil {
		typ = faults.CategoryOf(fault).String()
	}
	r := strings.NewReplacer(
		PlaceholderMessage, faults.MessageOf(fault),
		PlaceholderType, typ,
	)
	return r.Replace(text), nil
}

// Explain reports which entry serves key:
//
//	key="error.not_found.account" source=prefix pattern="error.not_found" -> "{message}"
//	key="error.unknown" source=missing
func (c *Catalog) Explain(key msgkey.Key) string {
	text, pattern, ok := c.index.Match(key.String())
	if !ok {
		return fmt.Sprintf("key=%q source=missing", key)
	}
	src := "prefix"
	if pattern == key.String() {
		src = "exact"
	}
	return fmt.Sprintf("key=%q source=%s pattern=%q -> %q", key, src, pattern, text)
}
