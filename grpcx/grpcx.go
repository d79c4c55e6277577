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

// Package grpcx projects dispatch results onto gRPC statuses.
//
// The response becomes a status whose code is derived from the HTTP status
// and whose details carry the same information as the JSON body:
//
//	errdetails.ErrorInfo   reason (category), domain, http_status, rule
//	errdetails.BadRequest  one FieldViolation per field error, in order
//	errdetails.DebugInfo   the trace, only when the trace gate allowed it
//
// The per-request trace opt-in is the "trace" metadata key, with the same
// first-value-must-be-"true" rule as the HTTP query parameter.
package grpcx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"dirpx.dev/faults/apis"
	"dirpx.dev/faults/dispatch"
	"dirpx.dev/faults/tracegate"
)

// Domain is the ErrorInfo domain of every status produced here.
const Domain = "faults.dirpx.dev"

// Code maps an HTTP status to the closest gRPC code.
func Code(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound, http.StatusGone:
		return codes.NotFound
	case http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusPreconditionFailed:
		return codes.FailedPrecondition
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case 499:
		return codes.Canceled
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return codes.DeadlineExceeded
	}
	switch {
	case httpStatus >= 400 && httpStatus < 500:
		return codes.FailedPrecondition
	case httpStatus >= 500:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Status builds the gRPC status for res. Details that fail to attach are
// dropped; the code and message are always kept.
func Status(res dispatch.Result) *status.Status {
	resp := res.Response
	st := status.New(Code(resp.Status), resp.Message)

	details := []protoadapt.MessageV1{
		&errdetails.ErrorInfo{
			Reason: strings.ToUpper(res.Category.String()),
			Domain: Domain,
			Metadata: map[string]string{
				"http_status": strconv.Itoa(resp.Status),
				"rule":        res.Rule,
			},
		},
	}
	if len(resp.Errors) > 0 {
		br := &errdetails.BadRequest{
			FieldViolations: make([]*errdetails.BadRequest_FieldViolation, 0, len(resp.Errors)),
		}
		for _, fe := range resp.Errors {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       fe.Field,
				Description: fe.Message,
			})
		}
		details = append(details, br)
	}
	if trace, ok := resp.TraceText(); ok {
		details = append(details, &errdetails.DebugInfo{
			StackEntries: strings.Split(trace, "\n"),
			Detail:       firstLine(trace),
		})
	}

	if with, err := st.WithDetails(details...); err == nil {
		return with
	}
	return st
}

// Response rebuilds an apis.ErrorResponse from a gRPC error produced by
// Status. It reports false for errors that carry no ErrorInfo from Domain.
func Response(err error) (*apis.ErrorResponse, bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return nil, false
	}
	var (
		resp  *apis.ErrorResponse
		trace *errdetails.DebugInfo
		br    *errdetails.BadRequest
	)
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			if v.GetDomain() != Domain {
				continue
			}
			code, err := strconv.Atoi(v.GetMetadata()["http_status"])
			if err != nil {
				return nil, false
			}
			resp = apis.NewErrorResponse(code, st.Message())
		case *errdetails.BadRequest:
			br = v
		case *errdetails.DebugInfo:
			trace = v
		}
	}
	if resp == nil {
		return nil, false
	}
	for _, fv := range br.GetFieldViolations() {
		resp.AddValidationError(fv.GetField(), fv.GetDescription())
	}
	if trace != nil {
		resp.SetTrace(strings.Join(trace.GetStackEntries(), "\n"))
	}
	return resp, true
}

// UnaryServerInterceptor dispatches every handler error that is not already
// a gRPC status and returns the resulting status error.
func UnaryServerInterceptor(d *dispatch.Dispatcher) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, convert(ctx, d, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(d *dispatch.Dispatcher) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return convert(ss.Context(), d, err)
	}
}

func convert(ctx context.Context, d *dispatch.Dispatcher, err error) error {
	if _, ok := err.(interface{ GRPCStatus() *status.Status }); ok {
		return err
	}
	res := d.Dispatch(ctx, dispatch.Classify(err), traceQuery(ctx))
	return Status(res).Err()
}

// traceQuery exposes the incoming "trace" metadata as query values.
func traceQuery(ctx context.Context) url.Values {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}
	vals := md.Get(tracegate.Param)
	if len(vals) == 0 {
		return nil
	}
	return url.Values{tracegate.Param: vals}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
