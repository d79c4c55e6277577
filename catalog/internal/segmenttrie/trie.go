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

// Package segmenttrie is a segment-aware prefix index for dot-separated
// message keys.
package segmenttrie

import (
	"errors"
	"strings"
)

// Trie maps dotted key prefixes to values. Each node is one segment; the
// wildcard "*" matches exactly one segment. Lookups return the deepest
// (longest) matching prefix, so "error.not_found.account" beats
// "error.not_found" for the key "error.not_found.account.id".
//
// A Trie is not safe for concurrent Insert; it is safe for concurrent Match
// once all inserts are done.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted (may contain "*"); set with hasVal.
	pattern string
}

// ErrInvalidPrefix is returned when inserting a prefix that is empty, has
// empty segments, contains invalid characters, or consists only of
// wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with a dot-separated prefix such as
// "error.not_found" or "error.*.account". Re-inserting a prefix replaces its
// value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	wildOnly := true
	for _, s := range segs {
		if !validSegment(s, true) {
			return ErrInvalidPrefix
		}
		if s != "*" {
			wildOnly = false
		}
	}
	if wildOnly {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the deepest prefix matching key, the pattern it
// was inserted under, and whether anything matched. Exact segments and "*"
// branches are both explored, so a deeper wildcard match wins over a
// shallower exact one. An invalid key stops the walk at the first bad
// segment.
func (t *Trie[T]) Match(key string) (val T, pattern string, ok bool) {
	if t == nil {
		return val, "", false
	}
	best := t.walk(key, 0, 0, nil, -1)
	if best == nil {
		return val, "", false
	}
	return best.val, best.pattern, true
}

// walk descends from t starting at byte offset off of key. best/bestDepth
// carry the deepest valued node seen so far.
func (t *Trie[T]) walk(key string, off, depth int, best *Trie[T], bestDepth int) *Trie[T] {
	if t.hasVal && depth > bestDepth {
		best, bestDepth = t, depth
	}
	if off >= len(key) {
		return best
	}
	end := strings.IndexByte(key[off:], '.')
	if end < 0 {
		end = len(key)
	} else {
		end += off
	}
	seg := key[off:end]
	if !validSegment(seg, false) {
		return best
	}
	next := end
	if next < len(key) {
		next++
	}

	for _, branch := range [2]string{seg, "*"} {
		child, ok := t.children[branch]
		if !ok {
			continue
		}
		if cand := child.walk(key, next, depth+1, best, bestDepth); cand != best {
			best, bestDepth = cand, depthOf(cand)
		}
	}
	return best
}

// depthOf returns the segment depth of a valued node from its pattern.
func depthOf[T any](n *Trie[T]) int {
	return strings.Count(n.pattern, ".") + 1
}

// validSegment reports whether seg matches [a-z][a-z0-9_]*, or is "*" when
// allowWildcard is set.
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	if seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
