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

import (
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/category"
)

// Matcher is the signature of Rule.Match.
type Matcher = func(err error) (error, bool)

// MatchCategory accepts errors whose chain holds an apis.CategorizedError of
// category c and returns that link.
func MatchCategory(c category.Category) Matcher {
	return func(err error) (error, bool) {
		return find(err, func(e error) bool {
			ce, ok := e.(apis.CategorizedError)
			return ok && ce.FaultCategory() == c
		})
	}
}

// MatchAs accepts errors whose chain holds a link of concrete type T.
func MatchAs[T error]() Matcher {
	return func(err error) (error, bool) {
		return find(err, func(e error) bool {
			_, ok := e.(T)
			return ok
		})
	}
}

// MatchAny accepts what any of ms accepts, trying them in order.
func MatchAny(ms ...Matcher) Matcher {
	return func(err error) (error, bool) {
		for _, m := range ms {
			if link, ok := m(err); ok {
				return link, true
			}
		}
		return nil, false
	}
}

// matchCarrier accepts errors whose chain holds an apis.StatusCarrier with a
// usable status.
func matchCarrier(err error) (error, bool) {
	return find(err, func(e error) bool {
		sc, ok := e.(apis.StatusCarrier)
		return ok && validStatus(sc.HTTPStatus())
	})
}

// matchAlways accepts everything, nil included.
func matchAlways(err error) (error, bool) { return err, true }

// carriedStatus returns the status held by the first carrier in err's chain.
func carriedStatus(err error) int {
	link, ok := safeMatch(matchCarrier, err)
	if !ok {
		return 0
	}
	return link.(apis.StatusCarrier).HTTPStatus()
}

// find walks err's chain depth-first, in the order errors.As does, and
// returns the first link satisfying pred. A link that owns its category
// ends the walk along its branch: nothing below it is considered.
func find(err error, pred func(error) bool) (error, bool) {
	for err != nil {
		if pred(err) {
			return err, true
		}
		if owns(err) {
			return nil, false
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if link, ok := find(e, pred); ok {
					return link, true
				}
			}
			return nil, false
		default:
			return nil, false
		}
	}
	return nil, false
}

// owns reports whether err carries a category of its own. Unclassified
// wrappers do not: they defer to whatever they wrap.
func owns(err error) bool {
	ce, ok := err.(apis.CategorizedError)
	if !ok {
		return false
	}
	c := ce.FaultCategory()
	return c.Known() && c != category.Unclassified
}
