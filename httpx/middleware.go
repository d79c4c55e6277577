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

package httpx

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"dirpx.dev/faults/logging"
)

const (
	// HeaderRequestID is read from requests and echoed on responses.
	HeaderRequestID = "X-Request-Id"

	// KeyRequestID is the gin context key and log field for the request ID.
	KeyRequestID = "request_id"
)

// RequestID takes the request ID from HeaderRequestID, or generates one,
// and stores it on the gin context, the response header and the request
// context's log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(KeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)

		ctx := logging.WithFields(c.Request.Context(), zap.String(KeyRequestID, id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Metrics returns middleware recording request count and latency on reg.
// Call it once per registry.
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	factory := promauto.With(reg)
	duration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "faults",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	total := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faults",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		total.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
