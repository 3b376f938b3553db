package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Position-Ledger-Backend/internal/config"
)

func run(t *testing.T, cmd subcommands.Command, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	switch c := cmd.(type) {
	case *genkeyCmd:
		c.out, c.errOut = &out, &errOut
	case *encryptCmd:
		c.out, c.errOut = &out, &errOut
	}

	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))

	status := cmd.Execute(context.Background(), f)
	return status, strings.TrimSpace(out.String()), errOut.String()
}

func TestGenkeyCmd(t *testing.T) {
	status, key, _ := run(t, &genkeyCmd{})

	require.Equal(t, subcommands.ExitSuccess, status)
	token, err := config.EncryptSecret("check", key)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestEncryptCmd(t *testing.T) {
	key, err := config.GenerateSecretKey()
	require.NoError(t, err)

	t.Run("token decrypts back to the api key", func(t *testing.T) {
		cmd := &encryptCmd{getenv: func(string) string { return key }}

		status, token, _ := run(t, cmd, "demo-api-key")

		require.Equal(t, subcommands.ExitSuccess, status)
		plain, err := config.DecryptSecret(token, key)
		require.NoError(t, err)
		assert.Equal(t, "demo-api-key", plain)
	})

	t.Run("key flag overrides the environment", func(t *testing.T) {
		cmd := &encryptCmd{getenv: func(string) string { return "" }}

		status, token, _ := run(t, cmd, "-key", key, "demo-api-key")

		require.Equal(t, subcommands.ExitSuccess, status)
		plain, err := config.DecryptSecret(token, key)
		require.NoError(t, err)
		assert.Equal(t, "demo-api-key", plain)
	})

	t.Run("missing key is a usage error", func(t *testing.T) {
		cmd := &encryptCmd{getenv: func(string) string { return "" }}

		status, _, errOut := run(t, cmd, "demo-api-key")

		assert.Equal(t, subcommands.ExitUsageError, status)
		assert.Contains(t, errOut, "SECRET_KEY")
	})

	t.Run("missing api key is a usage error", func(t *testing.T) {
		cmd := &encryptCmd{getenv: func(string) string { return key }}

		status, _, _ := run(t, cmd)

		assert.Equal(t, subcommands.ExitUsageError, status)
	})

	t.Run("malformed key fails", func(t *testing.T) {
		cmd := &encryptCmd{getenv: func(string) string { return "not-base64!" }}

		status, _, _ := run(t, cmd, "demo-api-key")

		assert.Equal(t, subcommands.ExitFailure, status)
	})
}
