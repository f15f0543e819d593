package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"staffmatch/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "staffmatch dev\n", out)
}

func TestTokenIssuesValidToken(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "cli-secret")
	t.Setenv("APP_NAME", "staffmatch")

	out, err := run(t, "token", "--subject", "ops", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := jwt.NewHMACService("cli-secret", "staffmatch", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}

func TestTokenNeedsSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := run(t, "token", "--subject", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestMatchRejectsBadProjectID(t *testing.T) {
	_, err := run(t, "match", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project id")

	_, err = run(t, "match")
	require.Error(t, err)
}
