// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/reblock/pkg/status"
)

const renameScript = "search:《old_name》 replace:《new_name》"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
	}
	return root
}

func readFile(t *testing.T, root, path string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	return string(content)
}

func newManager(t *testing.T, root string) *status.Manager {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return status.New(root, &logger)
}

func TestDiscoverFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.py":            "",
		"pkg/util.py":        "",
		"pkg/util.py.bak":    "",
		"vendor/lib/x.py":    "",
		"README.md":          "",
		"pkg/nested/deep.py": "",
	})

	tests := []struct {
		name        string
		include     []string
		ignore      []string
		want        []string
		errContains string
	}{
		{
			name:    "recursive_glob",
			include: []string{"**/*.py"},
			want:    []string{"main.py", "pkg/nested/deep.py", "pkg/util.py", "vendor/lib/x.py"},
		},
		{
			name:    "ignore_patterns",
			include: []string{"**/*.py"},
			ignore:  []string{"vendor/**", "**/nested/**"},
			want:    []string{"main.py", "pkg/util.py"},
		},
		{
			name:    "overlapping_patterns_deduplicated",
			include: []string{"*.py", "**/*.py", "*.md"},
			ignore:  []string{"pkg/**", "vendor/**"},
			want:    []string{"README.md", "main.py"},
		},
		{
			name:        "invalid_pattern",
			include:     []string{"[abc"},
			errContains: "invalid include pattern",
		},
		{
			name:        "no_patterns",
			errContains: "at least one include pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscoverFiles(testContext(t), root, tt.include, tt.ignore)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyFiles(t *testing.T) {
	tests := []struct {
		name  string
		opts  FileOptions
		files map[string]string
		check func(t *testing.T, root string, results []FileResult)
	}{
		{
			name: "modifies_matching_files",
			opts: FileOptions{Include: []string{"**/*.py"}, Script: renameScript},
			files: map[string]string{
				"a.py":     "old_name = 1\n",
				"pkg/b.py": "print(old_name)\nprint(old_name)\n",
				"c.py":     "untouched\n",
			},
			check: func(t *testing.T, root string, results []FileResult) {
				require.Len(t, results, 3)

				assert.Equal(t, "a.py", results[0].Path)
				assert.Equal(t, status.StatusModified, results[0].Status)
				assert.Equal(t, "new_name = 1\n", readFile(t, root, "a.py"))

				assert.Equal(t, "c.py", results[1].Path)
				assert.Equal(t, status.StatusUnchanged, results[1].Status)
				assert.Equal(t, "unchanged", results[1].State)

				assert.Equal(t, "pkg/b.py", results[2].Path)
				assert.Equal(t, 2, results[2].Result.Primary)
				assert.Equal(t, 2, results[2].Inserted)
				assert.Equal(t, 2, results[2].Deleted)
				assert.Equal(t, "print(new_name)\nprint(new_name)\n", readFile(t, root, "pkg/b.py"))

				assert.NoFileExists(t, filepath.Join(root, "a.py"+status.BackupSuffix))
			},
		},
		{
			name: "dry_run_leaves_files",
			opts: FileOptions{Include: []string{"*.py"}, Script: renameScript, DryRun: true},
			files: map[string]string{
				"a.py": "old_name = 1\n",
			},
			check: func(t *testing.T, root string, results []FileResult) {
				require.Len(t, results, 1)
				assert.Equal(t, status.StatusPreview, results[0].Status)
				assert.Equal(t, "new_name = 1\n", results[0].Result.ModifiedCode)
				assert.Equal(t, "old_name = 1\n", readFile(t, root, "a.py"))
			},
		},
		{
			name: "backup_written",
			opts: FileOptions{Include: []string{"*.py"}, Script: renameScript, Backup: true, Concurrency: 1},
			files: map[string]string{
				"a.py": "old_name = 1\n",
			},
			check: func(t *testing.T, root string, results []FileResult) {
				require.Len(t, results, 1)
				assert.Equal(t, "old_name = 1\n", readFile(t, root, "a.py"+status.BackupSuffix))
				assert.Equal(t, "new_name = 1\n", readFile(t, root, "a.py"))
			},
		},
		{
			name: "block_match_in_file",
			opts: FileOptions{
				Include: []string{"*.py"},
				Script:  "search:《def f():\n    return 1》 replace:《def f():\n    return 2》",
			},
			files: map[string]string{
				"a.py": "class A:\n    def f() :\n            return 1\n",
			},
			check: func(t *testing.T, root string, results []FileResult) {
				require.Len(t, results, 1)
				assert.Equal(t, 1, results[0].Result.Secondary)
				assert.Equal(t, "class A:\n    def f():\n        return 2\n", readFile(t, root, "a.py"))
			},
		},
		{
			name:  "no_files_matched",
			opts:  FileOptions{Include: []string{"*.go"}, Script: renameScript},
			files: map[string]string{"a.py": "old_name\n"},
			check: func(t *testing.T, root string, results []FileResult) {
				assert.Empty(t, results)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, tt.files)
			mgr := newManager(t, root)

			results, err := ApplyFiles(testContext(t), mgr, tt.opts)
			require.NoError(t, err, "ApplyFiles should succeed")

			tt.check(t, root, results)

			tracked, err := mgr.ListFiles(testContext(t))
			require.NoError(t, err)
			assert.Len(t, tracked, len(results), "every file should be tracked")
		})
	}
}

func TestApplyFiles_Errors(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x\n"})
	mgr := newManager(t, root)

	_, err := ApplyFiles(testContext(t), mgr, FileOptions{Include: []string{"*.py"}, Ignore: []string{"[bad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")

	_, err = ApplyFiles(testContext(t), mgr, FileOptions{Include: []string{"*.py"}})
	require.NoError(t, err, "an empty script is not an error")
}

func TestRestoreFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":     "old_name = 1\n",
		"pkg/b.py": "old_name = 2\n",
	})
	mgr := newManager(t, root)
	ctx := testContext(t)

	_, err := ApplyFiles(ctx, mgr, FileOptions{Include: []string{"**/*.py"}, Script: renameScript, Backup: true})
	require.NoError(t, err)
	require.Equal(t, "new_name = 2\n", readFile(t, root, "pkg/b.py"))

	results, err := RestoreFiles(ctx, mgr, []string{"**/*.py"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.py", results[0].Path)
	assert.Equal(t, status.StatusRestored, results[0].Status)

	assert.Equal(t, "old_name = 1\n", readFile(t, root, "a.py"))
	assert.Equal(t, "old_name = 2\n", readFile(t, root, "pkg/b.py"))
	assert.NoFileExists(t, filepath.Join(root, "a.py"+status.BackupSuffix))
}
