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
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/faults"
	"dirpx.dev/faults/adapter"
	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/category"
	"dirpx.dev/faults/msgkey"
)

// DefaultRules returns a fresh copy of the built-in registry, in evaluation
// order. The last rule matches everything.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "pass_through",
			Category: category.PassThrough,
			Match:    matchCarrier,
			LogKey:   msgkey.LogPassThrough,
			Severity: zapcore.WarnLevel,
		},
		{
			Name:     "validation_failed",
			Category: category.Validation,
			Match: MatchAny(
				MatchCategory(category.Validation),
				MatchAs[validator.ValidationErrors](),
			),
			Status:         http.StatusUnprocessableEntity,
			Key:            msgkey.ErrorValidation,
			LogKey:         msgkey.LogMethodArgument,
			Severity:       zapcore.ErrorLevel,
			DefaultMessage: faults.DefaultValidationMessage,
			Fields:         validationFields,
		},
		{
			Name:     "not_found",
			Category: category.NotFound,
			Match:    MatchCategory(category.NotFound),
			Status:   http.StatusNotFound,
			Key:      msgkey.ErrorNotFound,
			LogKey:   msgkey.LogNotFound,
			Severity: zapcore.ErrorLevel,
		},
		{
			Name:     "conflict",
			Category: category.Conflict,
			Match:    MatchCategory(category.Conflict),
			Status:   http.StatusConflict,
			Key:      msgkey.ErrorAlreadyExists,
			LogKey:   msgkey.LogAlreadyExists,
			Severity: zapcore.ErrorLevel,
		},
		{
			Name:     "precondition_failed",
			Category: category.PreconditionFailed,
			Match:    MatchCategory(category.PreconditionFailed),
			Status:   http.StatusPreconditionFailed,
			Key:      msgkey.ErrorPreconditionFailed,
			LogKey:   msgkey.LogPreconditionFailed,
			Severity: zapcore.ErrorLevel,
		},
		{
			Name:     "unauthorized",
			Category: category.Unauthorized,
			Match:    MatchCategory(category.Unauthorized),
			Status:   http.StatusUnauthorized,
			Key:      msgkey.ErrorUnauthorized,
			LogKey:   msgkey.LogUnauthorizedDetails,
			Severity: zapcore.ErrorLevel,
		},
		{
			Name:     "malformed_request",
			Category: category.Malformed,
			Match:    MatchCategory(category.Malformed),
			Status:   http.StatusBadRequest,
			Key:      msgkey.ErrorMalformed,
			LogKey:   msgkey.LogFieldValidation,
			Severity: zapcore.WarnLevel,
		},
		unclassifiedRule(),
	}
}

func unclassifiedRule() Rule {
	return Rule{
		Name:     "unclassified",
		Category: category.Unclassified,
		Match:    matchAlways,
		Status:   http.StatusInternalServerError,
		Key:      msgkey.ErrorUnclassified,
		LogKey:   msgkey.LogUnclassified,
		Severity: zapcore.ErrorLevel,
	}
}

// validationFields extracts field errors from the link matched by the
// validation rule.
func validationFields(err error) []apis.FieldError {
	switch e := err.(type) {
	case apis.FieldedError:
		return e.FieldErrors()
	case validator.ValidationErrors:
		return adapter.ValidatorFields(e)
	default:
		return nil
	}
}
