package status

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusModified, "⟳ modified"},
		{StatusPreview, "~ would modify"},
		{StatusRestored, "✓ restored"},
		{StatusFailed, "✗ error"},
		{StatusUnchanged, "- unchanged"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusLabel(tt.status))
		})
	}
}

func TestCountsLabel(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	assert.Equal(t, "2/1 +3 -4", CountsLabel(FileInfo{Primary: 2, Secondary: 1, Inserted: 3, Deleted: 4}))
	assert.Equal(t, "0/0", CountsLabel(FileInfo{}))
}
