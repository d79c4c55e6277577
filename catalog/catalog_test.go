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

package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/faults"
	"dirpx.dev/faults/msgkey"
)

func TestResolve_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, len(Defaults()), c.Len())

	ctx := context.Background()

	got, err := c.Resolve(ctx, msgkey.ErrorValidation, faults.Validation())
	require.NoError(t, err)
	assert.Equal(t, "Validation failed", got)

	got, err = c.Resolve(ctx, msgkey.ErrorNotFound, faults.NotFound("Account 42 not found"))
	require.NoError(t, err)
	assert.Equal(t, "Account 42 not found", got)

	got, err = c.Resolve(ctx, msgkey.LogUnauthorizedDetails, faults.Unauthorized("bad token"))
	require.NoError(t, err)
	assert.Equal(t, "Unauthorized request", got)
}

func TestResolve_ForeignErrorUsesErrorText(t *testing.T) {
	c := MustNew()
	got, err := c.Resolve(context.Background(), msgkey.ErrorUnclassified, errors.New("boom"))
	require.NoError(t, err)
	assert.Equal(t, "boom", got)
}

func TestResolve_Placeholders(t *testing.T) {
	c := MustNew(WithMessage("error.precondition_failed", "[{type}] {message}"))

	f := fmt.Errorf("withdraw: %w", faults.InsufficientFunds("Insufficient funds"))
	got, err := c.Resolve(context.Background(), msgkey.ErrorPreconditionFailed, f)
	require.NoError(t, err)
	assert.Equal(t, "[precondition_failed] withdraw: precondition_failed: Insufficient funds: insufficient funds", got)

	got, err = c.Resolve(context.Background(), msgkey.ErrorPreconditionFailed, nil)
	require.NoError(t, err)
	assert.Equal(t, "[] ", got)
}

func TestResolve_LongestPrefix(t *testing.T) {
	c := MustNew(
		WithMessage("error.not_found.account", "No such account"),
		WithMessage("error.*.wallet", "Wallet problem"),
	)
	ctx := context.Background()

	got, err := c.Resolve(ctx, msgkey.MustParse("error.not_found.account.iban"), nil)
	require.NoError(t, err)
	assert.Equal(t, "No such account", got)

	got, err = c.Resolve(ctx, msgkey.MustParse("error.conflict.wallet"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Wallet problem", got)

	got, err = c.Resolve(ctx, msgkey.MustParse("error.not_found.card"), faults.NotFound("no card"))
	require.NoError(t, err)
	assert.Equal(t, "no card", got)
}

func TestResolve_Missing(t *testing.T) {
	c := MustNew(WithoutDefaults(), WithMessage("log.audit", "audit"))
	assert.Equal(t, 1, c.Len())

	_, err := c.Resolve(context.Background(), msgkey.ErrorNotFound, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestResolve_CanceledContext(t *testing.T) {
	c := MustNew()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Resolve(ctx, msgkey.ErrorNotFound, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithMessages_NormalizesAndOverrides(t *testing.T) {
	c := MustNew(WithMessages(map[string]string{
		"Error/Validation": "Invalid input",
	}))
	text, ok := c.Lookup(msgkey.ErrorValidation)
	require.True(t, ok)
	assert.Equal(t, "Invalid input", text)
}

func TestNew_InvalidPrefix(t *testing.T) {
	_, err := New(WithMessage("error..bad", "x"))
	require.Error(t, err)

	assert.Panics(t, func() { MustNew(WithMessage("*", "x")) })
}

func TestExplain(t *testing.T) {
	c := MustNew(WithMessage("error.not_found.account", "No such account"))

	assert.Equal(t,
		`key="error.not_found.account" source=exact pattern="error.not_found.account" -> "No such account"`,
		c.Explain(msgkey.MustParse("error.not_found.account")))
	assert.Equal(t,
		`key="error.not_found.card" source=prefix pattern="error.not_found" -> "{message}"`,
		c.Explain(msgkey.MustParse("error.not_found.card")))
	assert.Equal(t,
		`key="error.unknown" source=missing`,
		MustNew(WithoutDefaults(), WithMessage("log.x1", "x")).Explain(msgkey.MustParse("error.unknown")))
}
