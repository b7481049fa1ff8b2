package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silinternational/category-sync/internal"
)

func TestRootCmd_ConfigError(t *testing.T) {
	t.Setenv(internal.AccessTokenEnv, "")

	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{}`), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--category_id", "42", "--config", configFile})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)

	var result internal.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Equal(t, internal.ResultError, result.Result)
	require.Equal(t, internal.ActionError, result.Action)
	require.Equal(t, "42", result.CategoryID)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}
