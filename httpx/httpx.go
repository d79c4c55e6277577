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

// Package httpx wires the dispatcher into gin and plain net/http.
//
// Install registers everything a gin engine needs:
//
//	r := gin.New()
//	httpx.Install(r, d)
//	// handlers report failures with c.Error(err) and return
//
// Handlers never write error bodies themselves. They attach the error to
// the gin context; the Errors middleware dispatches the last one after the
// chain returns, Recovery turns panics into unclassified faults, and the
// NoRoute/NoMethod handlers wrap gin's own 404/405 in the same shape.
package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"dirpx.dev/faults"
	"dirpx.dev/faults/dispatch"
)

// Install adds RequestID, Recovery and Errors to r, in that order, and
// routes unknown paths and methods through the dispatcher.
func Install(r *gin.Engine, d *dispatch.Dispatcher) {
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), Recovery(d), Errors(d))
	r.NoRoute(NoRoute(d))
	r.NoMethod(NoMethod(d))
}

// Abort dispatches in and writes the response, stopping the gin chain.
func Abort(c *gin.Context, d *dispatch.Dispatcher, in dispatch.Input) dispatch.Result {
	res := d.Dispatch(c.Request.Context(), in, c.Request.URL.Query())
	c.AbortWithStatusJSON(res.Response.Status, res.Response)
	return res
}

// Errors dispatches the last error attached with c.Error once the rest of
// the chain has run. Nothing is written when a handler already wrote a
// response.
func Errors(d *dispatch.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Abort(c, d, dispatch.Classify(c.Errors.Last().Err))
	}
}

// Recovery turns a panic in a later handler into an unclassified fault.
// The fault records the panicking stack.
func Recovery(d *dispatch.Dispatcher) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, p any) {
		var cause error
		if err, ok := p.(error); ok {
			cause = fmt.Errorf("panic: %w", err)
		} else {
			cause = fmt.Errorf("panic: %v", p)
		}
		Abort(c, d, dispatch.Classify(faults.Wrap(cause, "unexpected panic")))
	})
}

// NoRoute answers requests for unknown paths with a pass-through 404.
func NoRoute(d *dispatch.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := fmt.Sprintf("No endpoint %s %s.", c.Request.Method, c.Request.URL.Path)
		Abort(c, d, dispatch.PassThrough(http.StatusNotFound, faults.WithStatus(http.StatusNotFound, msg)))
	}
}

// NoMethod answers requests with an unsupported method with a pass-through
// 405. Install enables gin's HandleMethodNotAllowed for it.
func NoMethod(d *dispatch.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := fmt.Sprintf("Request method '%s' is not supported", c.Request.Method)
		Abort(c, d, dispatch.PassThrough(http.StatusMethodNotAllowed, faults.WithStatus(http.StatusMethodNotAllowed, msg)))
	}
}

// Writer writes dispatch results on plain net/http handlers.
type Writer struct {
	Dispatcher *dispatch.Dispatcher
}

// Write dispatches err for r and writes the JSON body with a matching
// status. A nil err writes nothing.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	w.WriteInput(rw, r, dispatch.Classify(err))
}

// WriteInput is Write for an explicit dispatch input.
func (w Writer) WriteInput(rw http.ResponseWriter, r *http.Request, in dispatch.Input) dispatch.Result {
	res := w.Dispatcher.Dispatch(r.Context(), in, r.URL.Query())

	body, err := json.Marshal(res.Response)
	if err != nil {
		body = []byte(`{"status":500,"message":"An unexpected error occurred","errors":[]}`)
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(res.Response.Status)
	_, _ = rw.Write(body)
	return res
}
