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

// Response message keys. The text behind these ends up in the "message"
// field of the error response.
const (
	ErrorValidation         Key = "error.validation"
	ErrorNotFound           Key = "error.not_found"
	ErrorAlreadyExists      Key = "error.already_exists"
	ErrorPreconditionFailed Key = "error.precondition_failed"
	ErrorUnauthorized       Key = "error.unauthorized"
	ErrorMalformed          Key = "error.malformed_request"
	ErrorUnclassified       Key = "error.unclassified"
)

// Log message keys. The text behind these is the message of the single log
// record written per handled fault; it is never returned to callers.
const (
	LogMethodArgument      Key = "log.method_argument"
	LogNotFound            Key = "log.not_found"
	LogAlreadyExists       Key = "log.already_exists"
	LogPreconditionFailed  Key = "log.precondition_failed"
	LogUnauthorizedDetails Key = "log.unauthorized_details"
	LogFieldValidation     Key = "log.field_validation"
	LogPassThrough         Key = "log.pass_through"
	LogUnclassified        Key = "log.unclassified"
)
