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

package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/faults"
	"dirpx.dev/faults/catalog"
	"dirpx.dev/faults/dispatch"
	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/internal/demo"
)

const token = "s3cret"

type body struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  []json.RawMessage `json:"errors"`
	Trace   *string           `json:"trace"`
}

type fixture struct {
	router *gin.Engine
	logs   *observer.ObservedLogs
	reg    *prometheus.Registry
}

func newFixture(t *testing.T, trace bool) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	d, err := dispatch.New(zap.New(core), catalog.MustNew(), dispatch.WithTrace(trace))
	require.NoError(t, err)

	store := demo.NewStore()
	_, err = store.Create(context.Background(), demo.Wallet{
		IBAN: "DE89370400440532013000", Name: "main", Email: "owner@example.com", Balance: 100,
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	r := demo.NewRouter(zap.NewNop(), d, store, demo.Options{Token: token, Registerer: reg})
	return fixture{router: r, logs: logs, reg: reg}
}

func (f fixture) do(t *testing.T, method, path, payload string, authed bool) (*httptest.ResponseRecorder, body, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var b body
	raw := rec.Body.String()
	if rec.Code >= 400 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b), raw)
		assert.Equal(t, rec.Code, b.Status, "status in body equals status on the wire")
		assert.NotEmpty(t, b.Message)
		assert.NotNil(t, b.Errors, "errors is always an array")
	}
	return rec, b, raw
}

func TestScenario1_InvalidEmail(t *testing.T) {
	f := newFixture(t, true)

	rec, b, raw := f.do(t, http.MethodPost, "/api/v1/wallets",
		`{"iban":"DE89370400440532013001","name":"second","email":"not-an-email","balance":0}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Validation failed", b.Message)
	require.Len(t, b.Errors, 1)
	assert.JSONEq(t, `{"field":"email","message":"must be a well-formed email address"}`, string(b.Errors[0]))
	assert.NotContains(t, raw, `"trace"`)

	require.Equal(t, 1, f.logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, f.logs.All()[0].Level)
}

func TestScenario1_EveryFieldReported(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodPost, "/api/v1/wallets", `{"iban":"x","name":"","email":"bad"}`, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, b.Errors, 3)
	assert.JSONEq(t, `{"field":"iban","message":"length must be at least 15"}`, string(b.Errors[0]))
	assert.JSONEq(t, `{"field":"name","message":"must not be blank"}`, string(b.Errors[1]))
	assert.JSONEq(t, `{"field":"email","message":"must be a well-formed email address"}`, string(b.Errors[2]))
}

func TestScenario2_InsufficientFunds(t *testing.T) {
	f := newFixture(t, false)

	rec, b, raw := f.do(t, http.MethodPost, "/api/v1/wallets/1/withdraw", `{"amount":500}`, true)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, "Insufficient funds", b.Message)
	assert.Empty(t, b.Errors)
	assert.Contains(t, raw, `"errors":[]`)
}

func TestScenario3_NotFound(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodGet, "/api/v1/wallets/42", "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Requested wallet is not found (id: 42)", b.Message)
}

func TestScenario4_AlreadyExists(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodPost, "/api/v1/wallets",
		`{"iban":"DE89370400440532013000","name":"copy","email":"x@example.com"}`, true)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Wallet with IBAN DE89370400440532013000 already exists", b.Message)
}

func TestScenario5_Unauthenticated(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodGet, "/api/v1/wallets/1", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Full authentication is required to access this resource", b.Message)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/1", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestScenario6_UnexpectedFaultTrace(t *testing.T) {
	t.Run("enabled and opted in", func(t *testing.T) {
		f := newFixture(t, true)
		rec, b, _ := f.do(t, http.MethodGet, "/api/v1/debug/fail?trace=true", "", false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "reconcile ledger: ledger replica unreachable", b.Message)
		require.NotNil(t, b.Trace)
		assert.Contains(t, *b.Trace, "*fmt.wrapError: reconcile ledger: ledger replica unreachable")
		assert.Contains(t, *b.Trace, "caused by: *errors.errorString: ledger replica unreachable")
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, false)
		rec, b, raw := f.do(t, http.MethodGet, "/api/v1/debug/fail?trace=true", "", false)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, b.Trace)
		assert.NotContains(t, raw, `"trace"`)

		require.Equal(t, 1, f.logs.Len())
		assert.Contains(t, f.logs.All()[0].ContextMap()["fault"], "ledger replica unreachable")
	})

	t.Run("enabled, not opted in", func(t *testing.T) {
		f := newFixture(t, true)
		for _, q := range []string{"", "?trace=True", "?trace=1", "?trace=false&trace=true"} {
			_, b, _ := f.do(t, http.MethodGet, "/api/v1/debug/fail"+q, "", false)
			assert.Nil(t, b.Trace, q)
		}
	})
}

func TestPanicRecovery(t *testing.T) {
	f := newFixture(t, true)

	rec, b, _ := f.do(t, http.MethodGet, "/api/v1/debug/panic?trace=true", "", false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unexpected panic", b.Message)
	require.NotNil(t, b.Trace)
	assert.Contains(t, *b.Trace, "assignment to entry in nil map")
	assert.Contains(t, *b.Trace, "\tat ")
	assert.Equal(t, 1, f.logs.Len())
}

func TestPassThrough_FrameworkStatuses(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodGet, "/nope", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No endpoint GET /nope.", b.Message)

	rec, b, _ = f.do(t, http.MethodDelete, "/api/v1/wallets", "", true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Request method 'DELETE' is not supported", b.Message)

	rec, b, _ = f.do(t, http.MethodPost, "/api/v1/wallets", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", b.Message)

	rec, b, _ = f.do(t, http.MethodGet, "/api/v1/wallets/abc", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `value "abc" is not a valid number`, b.Message)

	for _, e := range f.logs.All() {
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
}

func TestConstraintViolationIsNotAggregated(t *testing.T) {
	f := newFixture(t, false)

	rec, b, _ := f.do(t, http.MethodGet, "/api/v1/wallets?limit=500", "", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "list.limit: must be between 1 and 100, got 500", b.Message)
	assert.Empty(t, b.Errors)
	require.Equal(t, 1, f.logs.Len())
	assert.Equal(t, zapcore.WarnLevel, f.logs.All()[0].Level)
}

func TestSuccessIsUntouched(t *testing.T) {
	f := newFixture(t, false)

	rec, _, raw := f.do(t, http.MethodGet, "/api/v1/wallets/1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, raw, `"iban":"DE89370400440532013000"`)
	assert.Equal(t, 0, f.logs.Len())
}

func TestRequestID(t *testing.T) {
	f := newFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets/42", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(httpx.HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(httpx.HeaderRequestID))
	require.Equal(t, 1, f.logs.Len())
	assert.Equal(t, "req-123", f.logs.All()[0].ContextMap()[httpx.KeyRequestID])

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rec.Header().Get(httpx.HeaderRequestID), 36, "generated ids are uuids")
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, false)
	_, _, _ = f.do(t, http.MethodGet, "/api/v1/wallets/42", "", true)
	_, _, _ = f.do(t, http.MethodGet, "/api/v1/wallets/42", "", true)

	n, err := testutil.GatherAndCount(f.reg, "faults_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "one series for GET /api/v1/wallets/:id 404")
}

func TestWriter_NetHTTP(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d, err := dispatch.New(zap.New(core), catalog.MustNew())
	require.NoError(t, err)
	w := httpx.Writer{Dispatcher: d}

	h := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write(rw, r, nil)
			rw.WriteHeader(http.StatusNoContent)
		default:
			w.Write(rw, r, faults.Conflict("version mismatch"))
		}
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/doc", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":409,"message":"version mismatch","errors":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestWriter_NilFault(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d, err := dispatch.New(zap.New(core), catalog.MustNew(), dispatch.WithTrace(true))
	require.NoError(t, err)
	w := httpx.Writer{Dispatcher: d}

	var missing *faults.Fault

	rec := httptest.NewRecorder()
	w.Write(rec, httptest.NewRequest(http.MethodGet, "/doc?trace=true", nil), missing)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"An unexpected error occurred"`)
	assert.Contains(t, rec.Body.String(), `"trace":"*faults.Fault: \u003cnil\u003e"`)
	assert.Equal(t, 1, logs.Len())
}
