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

// Package dispatch turns any error reaching the edge of a request into one
// uniform apis.ErrorResponse and exactly one log record.
//
// # Rules
//
// Classification is an explicit, ordered list of Rules evaluated top to
// bottom; the first rule whose Match accepts the error wins. The default
// registry is:
//
//	pass_through          carried status  warn (<500) / error (>=500)
//	validation_failed     422             error   every field error is kept
//	not_found             404             error
//	conflict              409             error
//	precondition_failed   412             error
//	unauthorized          401             error
//	malformed_request     400             warn    no per-field aggregation
//	unclassified          500             error   always matches
//
// Matching walks the whole wrap chain, so a not-found fault wrapped by
// fmt.Errorf("%w") or by an unclassified fault is still a 404.
//
// # Messages
//
// The rule's message key is resolved through an apis.Resolver with the
// matched fault as context. If the resolver fails, panics, times out or
// returns "", the fault's own message is used, then a generic fallback. A
// response never leaves without a message.
//
// # Trace
//
// Diagnostic detail is attached to the response only when the dispatcher was
// built WithTrace(true) and the request's first "trace" query value is the
// literal "true". The log record always carries it.
//
// # Building a dispatcher
//
// A Dispatcher is an immutable snapshot built once at startup and shared by
// all requests:
//
//	d, err := dispatch.New(logger, cat,
//	    dispatch.WithTrace(cfg.ExceptionTrace),
//	    dispatch.WithResolveTimeout(50*time.Millisecond),
//	)
//	res := d.Dispatch(ctx, dispatch.Classify(err), r.URL.Query())
//	// res.Response.Status, res.Response.Message, ...
//
// Explain shows which rule an error would hit without logging anything.
package dispatch
