package main

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	require.NotNil(t, info)
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestFormatVersion(t *testing.T) {
	info := &VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Time:      "2025-01-01T00:00:00Z",
		Modified:  true,
	}

	out := FormatVersion(info)
	assert.Contains(t, out, "🚀 reblock version info:")
	assert.Contains(t, out, "Version:   v1.2.3")
	assert.Contains(t, out, "Revision:  abc123 (modified)")
	assert.Contains(t, out, "Platform:  linux/amd64")
}

func TestVersionCmd(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		_, stdout, _, err := runRoot(t, "", "version")
		require.NoError(t, err)

		var info VersionInfo
		require.NoError(t, json.Unmarshal([]byte(stdout), &info))
		assert.Equal(t, runtime.Version(), info.GoVersion)
	})

	t.Run("text", func(t *testing.T) {
		_, stdout, _, err := runRoot(t, "", "version", "-o", "text")
		require.NoError(t, err)
		assert.Contains(t, stdout, "🚀 reblock version info:")
	})
}
