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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FAULTS_AUTH_TOKEN", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.ExceptionTrace, "trace is off unless configured")
	assert.Equal(t, 100*time.Millisecond, cfg.ResolveTimeout)
	assert.Equal(t, "An unexpected error occurred", cfg.FallbackMessage)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "s3cret", cfg.AuthToken)
	assert.Empty(t, cfg.Messages)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "faults.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
MODE: debug
ADDR: ":9090"
AUTH_TOKEN: from-file
MESSAGES:
  error.not_found: "Nothing here: {message}"
  log.unclassified: "Boom"
`), 0o600))

	t.Setenv("FAULTS_EXCEPTION_TRACE", "true")
	t.Setenv("FAULTS_RESOLVE_TIMEOUT", "250ms")
	t.Setenv("FAULTS_ADDR", ":7070")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.True(t, cfg.ExceptionTrace)
	assert.Equal(t, 250*time.Millisecond, cfg.ResolveTimeout)
	assert.Equal(t, "from-file", cfg.AuthToken)
	assert.Equal(t, map[string]string{
		"error.not_found":  "Nothing here: {message}",
		"log.unclassified": "Boom",
	}, cfg.Messages)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("FAULTS_AUTH_TOKEN", "x")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		t.Setenv("FAULTS_AUTH_TOKEN", "")
		_, err := Load("")
		assert.ErrorContains(t, err, "AuthToken")
	})
	t.Run("bad mode", func(t *testing.T) {
		t.Setenv("FAULTS_AUTH_TOKEN", "x")
		t.Setenv("FAULTS_MODE", "prod")
		_, err := Load("")
		assert.ErrorContains(t, err, "Mode")
	})
	t.Run("malformed file", func(t *testing.T) {
		t.Setenv("FAULTS_AUTH_TOKEN", "x")
		file := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(file, []byte("ADDR: [unclosed"), 0o600))
		_, err := Load(file)
		assert.Error(t, err)
	})
}
