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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"dirpx.dev/faults"
	"dirpx.dev/faults/apis"
)

// FromValidator converts validator output into a validation fault carrying
// one field error per failed constraint, in the order validator reported
// them. Anything that is not validator.ValidationErrors is returned as-is.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := faults.As(err); ok {
		return err
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return faults.Validation(ValidatorFields(verrs)...).WithCause(err)
}

// ValidatorFields maps each validator.FieldError to an apis.FieldError.
// Duplicates are kept.
func ValidatorFields(verrs validator.ValidationErrors) []apis.FieldError {
	out := make([]apis.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apis.FieldError{Field: fe.Field(), Message: FieldMessage(fe)})
	}
	return out
}

// FieldMessage returns the caller-facing text for one failed constraint.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		return sizeOrValue(fe, "at least")
	case "max":
		return sizeOrValue(fe, "at most")
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.Join(strings.Fields(fe.Param()), ", "))
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return fmt.Sprintf("failed the %q constraint", fe.Tag())
	}
}

func sizeOrValue(fe validator.FieldError, bound string) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("length must be %s %s", bound, fe.Param())
	case reflect.Slice, reflect.Map, reflect.Array:
		return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
	default:
		return fmt.Sprintf("must be %s %s", bound, fe.Param())
	}
}

// JSONTagName reports struct fields under their json name, so field errors
// use the names callers actually sent. Register it with
// (*validator.Validate).RegisterTagNameFunc.
func JSONTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

// NewValidator returns a validator that names fields by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(JSONTagName)
	return v
}
