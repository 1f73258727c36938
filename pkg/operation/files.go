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
	"context"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/reblock/pkg/status"
)

// DefaultConcurrency bounds parallel file transforms when none is configured
const DefaultConcurrency = 4

// 📁 FileOptions selects files and controls how a script is applied to them
type FileOptions struct {
	Root        string   // Directory patterns are resolved against
	Include     []string // Doublestar patterns selecting files
	Ignore      []string // Doublestar patterns excluding files
	Script      string   // Directive script applied to every file
	DryRun      bool     // Compute results without writing
	Backup      bool     // Keep a .bak copy of each modified file
	Concurrency int      // Parallel transforms, 0 means DefaultConcurrency
	Transform   []Option // Options passed to every Transform call
}

// 📄 FileResult is the outcome for one file
type FileResult struct {
	Path     string            `json:"path" yaml:"path"`
	Status   status.FileStatus `json:"-" yaml:"-"`
	State    string            `json:"status" yaml:"status"`
	Result   *Result           `json:"result,omitempty" yaml:"result,omitempty"`
	Inserted int               `json:"inserted" yaml:"inserted"`
	Deleted  int               `json:"deleted" yaml:"deleted"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
	Original string            `json:"-" yaml:"-"`
}

// Info converts the result to a status.FileInfo
func (f FileResult) Info() status.FileInfo {
	info := status.FileInfo{
		Path:     f.Path,
		Status:   f.Status,
		Inserted: f.Inserted,
		Deleted:  f.Deleted,
	}
	if f.Result != nil {
		info.Primary = f.Result.Primary
		info.Secondary = f.Result.Secondary
		info.Checksum = status.Checksum([]byte(f.Result.ModifiedCode))
		info.Size = int64(len(f.Result.ModifiedCode))
	}
	if f.Error != "" {
		info.Error = errors.New(f.Error)
	}
	return info
}

// 🔍 DiscoverFiles returns the regular files under root matching include and
// not matching ignore, as sorted slash-separated relative paths. Backup
// files are never selected.
func DiscoverFiles(ctx context.Context, root string, include, ignore []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if len(include) == 0 {
		return nil, errors.Errorf("at least one include pattern is required")
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid include pattern %q", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}

		for _, path := range matches {
			if seen[path] || strings.HasSuffix(path, status.BackupSuffix) {
				continue
			}
			seen[path] = true

			if ignored, by := matchesAny(ignore, path); ignored {
				logger.Debug().Str("file", path).Str("pattern", by).Msg("file ignored by pattern")
				continue
			}
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// matchesAny reports the first pattern that matches path
func matchesAny(patterns []string, path string) (bool, string) {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true, pattern
		}
	}
	return false, ""
}

// 🚀 ApplyFiles transforms every selected file with opts.Script.
//
// Files are processed concurrently, each with its own Transform run. A file
// that cannot be read or written is reported with StatusFailed and does not
// stop the others. The returned results are sorted by path.
func ApplyFiles(ctx context.Context, mgr *status.Manager, opts FileOptions) ([]FileResult, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if err := ValidateOptions(opts.Transform...); err != nil {
		return nil, err
	}

	files, err := DiscoverFiles(ctx, mgr.BaseDir(), opts.Include, opts.Ignore)
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	logger.Debug().Int("files", len(files)).Int("concurrency", limit).Bool("dry_run", opts.DryRun).Msg("applying script to files")

	results := make([]FileResult, len(files))
	mgr.StartOperation(ctx, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return errors.Errorf("applying %s: %w", path, err)
			}
			results[i] = applyFile(egCtx, mgr, path, opts)
			mgr.TrackFile(egCtx, path, results[i].Info())
			mgr.Advance(egCtx)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	mgr.FinishOperation(ctx)

	return results, nil
}

func applyFile(ctx context.Context, mgr *status.Manager, path string, opts FileOptions) FileResult {
	fr := FileResult{Path: path}
	fail := func(err error) FileResult {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", path).Msg("file failed")
		fr.Status = status.StatusFailed
		fr.State = fr.Status.String()
		fr.Error = err.Error()
		return fr
	}

	content, err := mgr.ReadFile(ctx, path)
	if err != nil {
		return fail(err)
	}
	fr.Original = string(content)

	res, err := Transform(ctx, opts.Script, fr.Original, opts.Transform...)
	if err != nil {
		return fail(err)
	}
	fr.Result = res

	if !res.Changed() || res.ModifiedCode == fr.Original {
		fr.Status = status.StatusUnchanged
		fr.State = fr.Status.String()
		return fr
	}

	fr.Inserted, fr.Deleted = status.ChangeStats(fr.Original, res.ModifiedCode)

	if opts.DryRun {
		fr.Status = status.StatusPreview
		fr.State = fr.Status.String()
		return fr
	}

	if opts.Backup {
		if err := mgr.BackupFile(ctx, path); err != nil {
			return fail(errors.Errorf("backing up %s: %w", path, err))
		}
	}
	if err := mgr.WriteFileAtomic(ctx, path, []byte(res.ModifiedCode)); err != nil {
		return fail(errors.Errorf("writing %s: %w", path, err))
	}

	fr.Status = status.StatusModified
	fr.State = fr.Status.String()
	return fr
}

// ⏪ RestoreFiles puts back the .bak copy of every file under the manager's
// base directory matching include.
func RestoreFiles(ctx context.Context, mgr *status.Manager, include []string) ([]FileResult, error) {
	backups := make([]string, 0, len(include))
	for _, pattern := range include {
		backups = append(backups, pattern+status.BackupSuffix)
	}

	fsys := os.DirFS(mgr.BaseDir())
	var results []FileResult
	seen := make(map[string]bool)

	for _, pattern := range backups {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		for _, backup := range matches {
			path := strings.TrimSuffix(backup, status.BackupSuffix)
			if seen[path] {
				continue
			}
			seen[path] = true

			fr := FileResult{Path: path, Status: status.StatusRestored}
			if err := mgr.RestoreFile(ctx, path); err != nil {
				fr.Status = status.StatusFailed
				fr.Error = err.Error()
			}
			fr.State = fr.Status.String()
			mgr.TrackFile(ctx, path, fr.Info())
			results = append(results, fr)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
