package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/operation"
)

func runRoot(t *testing.T, stdin string, args ...string) (*opts.RootOpts, string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	o := &opts.RootOpts{
		Config:         config.Default(),
		Stdin:          bytes.NewBufferString(stdin),
		Stdout:         &stdout,
		Stderr:         &stderr,
		ReadClipboard:  func() (string, error) { return "", nil },
		WriteClipboard: func(string) error { return nil },
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	cmd := NewRootCmd(o)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return o, stdout.String(), stderr.String(), err
}

func TestRootCmd_Apply(t *testing.T) {
	_, stdout, _, err := runRoot(t, "",
		"apply",
		"--commands", "search:《old_name》 replace:《new_name》",
		"--original-code", "x = old_name")
	require.NoError(t, err)

	var res operation.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res), "json is the default output")
	assert.Equal(t, "x = new_name\n", res.ModifiedCode)
}

func TestRootCmd_Flags(t *testing.T) {
	script := "search:《foo bar》 replace:《baz》"

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{
			name:     "strip_by_default",
			args:     nil,
			wantCode: "baz\n",
		},
		{
			name:     "collapse_flag",
			args:     []string{"--normalization", "collapse"},
			wantCode: "foobar\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"apply", "--commands", script, "--original-code", "foobar\n", "--output", "yaml"}, tt.args...)
			o, stdout, _, err := runRoot(t, "", args...)
			require.NoError(t, err)

			var res operation.Result
			require.NoError(t, yaml.Unmarshal([]byte(stdout), &res))
			assert.Equal(t, tt.wantCode, res.ModifiedCode)
			assert.Equal(t, config.OutputYAML, o.Config.Output)
		})
	}
}

func TestRootCmd_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".reblock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`syntax:
  open_marker: "<<<"
  close_marker: ">>>"
output: text
`), 0o644))

	t.Run("config_applies", func(t *testing.T) {
		o, stdout, stderr, err := runRoot(t, "",
			"--config", path,
			"apply",
			"--commands", "search:<<<a>>> replace:<<<b>>>",
			"--original-code", "a\n")
		require.NoError(t, err)
		assert.Equal(t, "b\n", stdout)
		assert.Contains(t, stderr, "exact match: replaced 1 occurrence(s)")
		assert.Equal(t, path, o.Config.Location())
	})

	t.Run("flag_overrides_config", func(t *testing.T) {
		_, stdout, _, err := runRoot(t, "",
			"-c", path,
			"-o", "json",
			"apply",
			"--commands", "search:<<<a>>> replace:<<<b>>>",
			"--original-code", "a\n")
		require.NoError(t, err)

		var res operation.Result
		require.NoError(t, json.Unmarshal([]byte(stdout), &res))
		assert.Equal(t, "b\n", res.ModifiedCode)
	})
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing_config",
			args:    []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"},
			wantErr: "loading config",
		},
		{
			name:    "bad_output",
			args:    []string{"--output", "xml", "version"},
			wantErr: "must be one of json, yaml, text",
		},
		{
			name:    "bad_normalization",
			args:    []string{"--normalization", "fuzzy", "version"},
			wantErr: "must be one of strip, collapse",
		},
		{
			name:    "unknown_command",
			args:    []string{"frobnicate"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stdout, _, err := runRoot(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout)
		})
	}
}

func TestRootCmd_Stdin(t *testing.T) {
	_, stdout, _, err := runRoot(t, "search:《1》 replace:《2》",
		"apply", "--commands-file", "-", "--original-code", "x = 1", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", stdout)
}
