package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantErr    string
	}{
		{
			name:       "success",
			args:       []string{"apply", "-o", "text", "--commands", "search:《a》 replace:《b》", "--original-code", "a"},
			wantCode:   0,
			wantStdout: "b\n",
		},
		{
			name:     "missing_commands",
			args:     []string{"apply", "--original-code", "x"},
			wantCode: 1,
			wantErr:  "missing commands",
		},
		{
			name:     "bad_flag",
			args:     []string{"apply", "--no-such-flag"},
			wantCode: 1,
			wantErr:  "unknown flag: --no-such-flag",
		},
		{
			name:       "no_match_exits_zero",
			args:       []string{"apply", "-o", "text", "--commands", "search:《zzz》 replace:《b》", "--original-code", "a\n"},
			wantCode:   0,
			wantStdout: "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			o := &opts.RootOpts{
				Config:         config.Default(),
				Stdin:          &bytes.Buffer{},
				Stdout:         &stdout,
				Stderr:         &stderr,
				ReadClipboard:  func() (string, error) { return "", nil },
				WriteClipboard: func(string) error { return nil },
			}
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			code := run(ctx, o, tt.args)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())

			if tt.wantErr != "" {
				assert.Equal(t, 1, strings.Count(stderr.String(), tt.wantErr), "error should be printed once, got %q", stderr.String())
			}
		})
	}
}
