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
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/faults/category"
)

type metrics struct {
	dispatched *prometheus.CounterVec
}

// newMetrics registers the dispatch counter. A counter already registered
// under the same name (a second dispatcher on one registry) is reused.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	cv := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faults",
			Name:      "dispatched_total",
			Help:      "Total number of faults turned into error responses",
		},
		[]string{"category", "status"},
	)
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		cv = existing
	}
	return &metrics{dispatched: cv}, nil
}

func (m *metrics) observe(c category.Category, status int) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(c.String(), strconv.Itoa(status)).Inc()
}
