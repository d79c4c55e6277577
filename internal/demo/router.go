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

package demo

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"dirpx.dev/faults"
	"dirpx.dev/faults/adapter"
	"dirpx.dev/faults/dispatch"
	"dirpx.dev/faults/httpx"
)

// ErrLedgerUnavailable is what the fail endpoint reports.
var ErrLedgerUnavailable = errors.New("ledger replica unreachable")

// CreateWalletRequest is the body of POST /api/v1/wallets.
type CreateWalletRequest struct {
	IBAN    string `json:"iban" binding:"required,alphanum,min=15,max=34"`
	Name    string `json:"name" binding:"required,min=3,max=64"`
	Email   string `json:"email" binding:"required,email"`
	Balance int64  `json:"balance" binding:"gte=0"`
}

// WithdrawRequest is the body of POST /api/v1/wallets/:id/withdraw.
type WithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// Options configures NewRouter.
type Options struct {
	// Token is the bearer token protecting /api/v1/wallets.
	Token string

	// Registerer, when set, receives HTTP request metrics.
	Registerer prometheus.Registerer
}

var registerTagName sync.Once

// NewRouter returns a gin engine serving the demo wallet API with every
// failure routed through d.
func NewRouter(logger *zap.Logger, d *dispatch.Dispatcher, store *Store, opts Options) *gin.Engine {
	registerTagName.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(adapter.JSONTagName)
		}
	})

	r := gin.New()
	if opts.Registerer != nil {
		r.Use(httpx.Metrics(opts.Registerer))
	}
	httpx.Install(r, d)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	NewWalletHandler(logger, store).RegisterRoutes(v1.Group("/wallets", Auth(opts.Token)))

	debug := v1.Group("/debug")
	debug.GET("/fail", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("reconcile ledger: %w", ErrLedgerUnavailable))
	})
	debug.GET("/panic", func(c *gin.Context) {
		var balances map[string]int64
		balances["reserve"]++
	})
	return r
}

// Auth rejects requests without "Authorization: Bearer <token>".
func Auth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			_ = c.Error(faults.Unauthorized("Full authentication is required to access this resource"))
			c.Abort()
			return
		}
		got, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" || got != token {
			_ = c.Error(faults.Unauthorized("Invalid credentials"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// WalletHandler serves the wallet resource.
type WalletHandler struct {
	logger      *zap.Logger
	store       *Store
	constraints *validator.Validate
}

// NewWalletHandler returns a handler backed by store.
func NewWalletHandler(logger *zap.Logger, store *Store) *WalletHandler {
	return &WalletHandler{logger: logger, store: store, constraints: adapter.NewValidator()}
}

// RegisterRoutes registers wallet routes on rg.
func (h *WalletHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/withdraw", h.Withdraw)
}

// List returns wallets. The limit parameter is checked as an ad hoc
// constraint, so a bad value is a single-message malformed request rather
// than a per-field validation failure.
func (h *WalletHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(adapter.FromBinding(err))
			return
		}
		limit = n
	}
	if err := h.constraints.Var(limit, "min=1,max=100"); err != nil {
		_ = c.Error(faults.Malformed(fmt.Sprintf("list.limit: must be between 1 and 100, got %d", limit)).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, h.store.List(c.Request.Context(), limit))
}

// Create stores a new wallet.
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(adapter.FromBinding(err))
		return
	}
	w, err := h.store.Create(c.Request.Context(), Wallet{
		IBAN:    req.IBAN,
		Name:    req.Name,
		Email:   req.Email,
		Balance: req.Balance,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.logger.Info("wallet created", zap.Int64("id", w.ID), zap.String(httpx.KeyRequestID, c.GetString(httpx.KeyRequestID)))
	c.JSON(http.StatusCreated, w)
}

// Get returns one wallet.
func (h *WalletHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	w, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// Withdraw takes money from a wallet.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(adapter.FromBinding(err))
		return
	}
	w, err := h.store.Withdraw(c.Request.Context(), id, req.Amount)
	if err != nil {
		_ = c.Error(fmt.Errorf("withdraw from wallet %d: %w", id, err))
		return
	}
	c.JSON(http.StatusOK, w)
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, adapter.FromBinding(err)
	}
	return id, nil
}
