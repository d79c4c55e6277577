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

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"dirpx.dev/faults"
)

// FromBinding converts an error from gin's ShouldBind family.
//
// Constraint failures become a validation fault with per-field entries.
// Unreadable bodies (bad JSON, wrong JSON types, empty body, unparsable
// numbers) already mean 400 to the transport, so they become pass-through
// faults carrying http.StatusBadRequest. Existing faults are returned
// unchanged; anything else is treated as a malformed request.
func FromBinding(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := faults.As(err); ok {
		return err
	}

	var (
		verrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
		invalid   *validator.InvalidValidationError
	)
	switch {
	case errors.As(err, &verrs):
		return FromValidator(verrs)
	case errors.As(err, &syntaxErr):
		return unreadable(fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), err)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return unreadable(fmt.Sprintf("field %q must be of type %s", field, typeErr.Type), err)
	case errors.Is(err, io.EOF):
		return unreadable("request body is empty", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return unreadable("request body is truncated", err)
	case errors.As(err, &numErr):
		return unreadable(fmt.Sprintf("value %q is not a valid number", numErr.Num), err)
	case errors.As(err, &invalid):
		return faults.Wrap(err, "request binding misconfigured")
	default:
		return faults.Malformed(faults.SafeError(err)).WithCause(err)
	}
}

func unreadable(msg string, cause error) error {
	return faults.WithStatus(http.StatusBadRequest, msg).WithCause(cause)
}
