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

package category

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Category is the canonical, validated representation of a fault category.
//
// It is a separate type (not just string) so that callers cannot mix raw
// user input with normalized values by accident.
type Category string

// MinLength and MaxLength define the allowed length range for a category.
const (
	// MinLength is the minimum length for a valid category.
	MinLength = 3

	// MaxLength is the maximum length for a valid category. Categories end up
	// as metric labels, so they are kept short.
	MaxLength = 48
)

// categoryFmt is the pattern a canonical category must match.
//
//	^ - start of string;
//	[a-z] - first character must be a lowercase ASCII letter;
//	[a-z0-9_]{2,47} - the rest; total length 3..48 (1 + 2..47);
//	$ - end of string.
//
// The {2,47} quantifier is tied to MinLength / MaxLength above.
const categoryFmt = `^[a-z][a-z0-9_]{2,47}$`

var categoryRe = regexp.MustCompile(categoryFmt)

var (
	// ErrCategoryInvalid is returned when a value cannot be parsed or
	// validated as a category.
	ErrCategoryInvalid = errors.New("faults: invalid category")

	// ErrCategoryUnknown is returned by ParseKnown when the value is well
	// formed but is not part of the closed taxonomy.
	ErrCategoryUnknown = errors.New("faults: unknown category")
)

var (
	_ encoding.TextMarshaler   = (*Category)(nil)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

// Empty is the zero-value category. It is considered "not provided".
var Empty Category = ""

// Parse normalizes and validates s. It does not check membership in the
// taxonomy; use ParseKnown for that.
func Parse(s string) (Category, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Category(s), nil
}

// ParseKnown is Parse plus a membership check against All().
func ParseKnown(s string) (Category, error) {
	c, err := Parse(s)
	if err != nil {
		return Empty, err
	}
	if !c.Known() {
		return Empty, ErrCategoryUnknown
	}
	return c, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Category {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims surrounding spaces, lowercases the value and replaces
// '-' with '_'. It does NOT guarantee that the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate checks whether c is well formed. The empty category is invalid.
func Validate(c Category) error {
	return validate(string(c))
}

// String returns the canonical string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Known reports whether c is one of the categories returned by All.
func (c Category) Known() bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !categoryRe.MatchString(s) {
		return ErrCategoryInvalid
	}
	return nil
}
