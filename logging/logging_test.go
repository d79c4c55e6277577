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

package logging

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{gin.ReleaseMode, gin.DebugMode, gin.TestMode} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l, mode)
	}
}

func TestWithFields_Accumulates(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Fields(ctx))
	assert.Equal(t, ctx, WithFields(ctx))

	ctx1 := WithFields(ctx, zap.String("request_id", "r1"))
	ctx2 := WithFields(ctx1, zap.String("user", "u1"))

	assert.Len(t, Fields(ctx1), 1)
	require.Len(t, Fields(ctx2), 2)
	assert.Equal(t, "request_id", Fields(ctx2)[0].Key)
	assert.Equal(t, "user", Fields(ctx2)[1].Key)
}

func TestFrom(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithFields(context.Background(), zap.String("request_id", "r1"))
	From(ctx, base).Info("hello")
	From(context.Background(), base).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "r1", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
