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

package msgkey

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Key is the canonical, validated representation of a message key.
//
// Example valid keys:
//
//   - "error.validation"
//   - "error.not_found.account"
//   - "log.method_argument"
type Key string

// MinLength and MaxLength define the allowed length range for a non-empty key.
const (
	MinLength = 3
	MaxLength = 128
)

// keyFmt accepts 1 to 4 dot-separated segments, each starting with a
// lowercase ASCII letter and continuing with [a-z0-9_]*.
//
// The empty string is handled separately and means "no key": the caller
// should use raw fault text instead of asking a resolver.
const keyFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`

var keyRe = regexp.MustCompile(keyFmt)

var (
	// ErrKeyInvalidFormat is returned when a key does not match keyFmt.
	ErrKeyInvalidFormat = errors.New("faults: invalid message key format")
	// ErrKeyInvalidLength is returned when a key is too short or too long.
	ErrKeyInvalidLength = errors.New("faults: invalid message key length")
)

var (
	_ encoding.TextMarshaler   = (*Key)(nil)
	_ encoding.TextUnmarshaler = (*Key)(nil)
)

// Empty is the zero-value key ("no key").
var Empty Key = ""

// Normalize trims spaces, lowercases, converts "/" to "." and "-" to "_".
// It does NOT guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Parse normalizes and validates s. The empty string yields Empty without
// error.
func Parse(s string) (Key, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Key(s), nil
}

// MustParse is the panic-on-error variant of Parse. Unlike Parse it rejects
// the empty string.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if k == Empty {
		panic("faults: empty message key in MustParse")
	}
	return k
}

// Validate checks whether k is canonical. Empty is valid.
func Validate(k Key) error {
	if k == Empty {
		return nil
	}
	return validate(string(k))
}

// String returns the canonical string representation of the key.
func (k Key) String() string {
	return string(k)
}

// Parent returns k without its last segment, or Empty for a single-segment
// key.
func (k Key) Parent() Key {
	i := strings.LastIndexByte(string(k), '.')
	if i < 0 {
		return Empty
	}
	return k[:i]
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrKeyInvalidLength
	}
	if !keyRe.MatchString(s) {
		return ErrKeyInvalidFormat
	}
	return nil
}
