package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/log"
	"github.com/walteh/reblock/pkg/operation"
	"github.com/walteh/reblock/pkg/status"
)

// NewFilesCmd creates the files command
func NewFilesCmd(o *opts.RootOpts) *cobra.Command {
	var (
		script      scriptFlags
		root        string
		ignore      []string
		dryRun      bool
		backup      bool
		concurrency int
		diff        bool
	)

	cmd := &cobra.Command{
		Use:   "files [pattern...]",
		Short: "Apply a directive script to every matching file",
		Long: `Files applies one directive script to every file under --root that matches the
given doublestar patterns (or files.include from the config). Each file is
transformed independently and written atomically; a file that fails does not
stop the others.`,
		Example: `  reblock files --commands-file edits.txt '**/*.py'
  reblock files --commands-file edits.txt --dry-run --diff 'src/**/*.go'
  reblock files --commands-file edits.txt --backup --ignore 'vendor/**' '**/*.go'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "files").Logger().WithContext(cmd.Context())

			commands, err := script.read(cmd, o)
			if err != nil {
				return err
			}

			cfg := o.Config
			include := args
			if len(include) == 0 {
				include = cfg.Files.Include
			}
			if len(include) == 0 {
				return errors.Errorf("no file patterns: pass patterns as arguments or set files.include")
			}
			if !cmd.Flags().Changed("ignore") {
				ignore = cfg.Files.Ignore
			}
			if !cmd.Flags().Changed("backup") {
				backup = cfg.Files.Backup
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.Files.Concurrency
			}

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return errors.Errorf("resolving root %s: %w", root, err)
			}

			mgr := status.New(absRoot, zerolog.Ctx(ctx))
			results, err := operation.ApplyFiles(ctx, mgr, operation.FileOptions{
				Root:        absRoot,
				Include:     include,
				Ignore:      ignore,
				Script:      commands,
				DryRun:      dryRun,
				Backup:      backup,
				Concurrency: concurrency,
				Transform: []operation.Option{
					operation.WithSyntax(cfg.DirectiveSyntax()),
					operation.WithNormalization(cfg.Normalization()),
				},
			})
			if err != nil {
				return errors.Errorf("applying files: %w", err)
			}

			if diff {
				return writeDiffs(o, results)
			}

			if cfg.Output != config.OutputText {
				return Encode(o.Stdout, cfg.Output, results)
			}

			o.Logger.StartRun(ctx, log.RunOperation{
				Root:     root,
				Patterns: include,
				Files:    len(results),
				DryRun:   dryRun,
			})
			for _, fr := range results {
				o.Logger.LogFileOperation(ctx, fileOperation(fr, dryRun))
			}
			ops := o.Logger.EndRun(ctx)
			o.Logger.LogNewline()

			return renderTable(o.Stdout, summaryRows(ops))
		},
	}

	script.register(cmd)
	cmd.Flags().StringVar(&root, "root", ".", "directory patterns are resolved against")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "doublestar patterns of files to skip")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without writing files")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .bak copy of every modified file; an existing .bak is kept")
	cmd.Flags().IntVar(&concurrency, "concurrency", operation.DefaultConcurrency, "number of files transformed in parallel")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff of every changed file")

	return cmd
}

// fileOperation converts a file result for console logging
func fileOperation(fr operation.FileResult, dryRun bool) log.FileOperation {
	op := log.FileOperation{
		Path:       fr.Path,
		Status:     fr.State,
		IsModified: fr.Status == status.StatusModified || fr.Status == status.StatusPreview,
		IsFailed:   fr.Status == status.StatusFailed,
		DryRun:     dryRun,
	}
	if fr.Result != nil {
		op.Primary = fr.Result.Primary
		op.Secondary = fr.Result.Secondary
	}
	return op
}

// summaryRows builds the totals table for a files run
func summaryRows(ops []log.FileOperation) [][]string {
	var modified, failed, unchanged, primary, secondary int
	for _, op := range ops {
		switch {
		case op.IsFailed:
			failed++
		case op.IsModified:
			modified++
		default:
			unchanged++
		}
		primary += op.Primary
		secondary += op.Secondary
	}

	return [][]string{
		{"files", "modified", "unchanged", "failed", "exact", "block"},
		{
			fmt.Sprint(len(ops)),
			fmt.Sprint(modified),
			fmt.Sprint(unchanged),
			fmt.Sprint(failed),
			fmt.Sprint(primary),
			fmt.Sprint(secondary),
		},
	}
}

// writeDiffs prints a unified diff for every file whose content changed
func writeDiffs(o *opts.RootOpts, results []operation.FileResult) error {
	for _, fr := range results {
		if fr.Result == nil || fr.Status == status.StatusFailed {
			continue
		}
		out, err := status.UnifiedDiff(fr.Path, fr.Original, fr.Result.ModifiedCode)
		if err != nil {
			return errors.Errorf("diffing %s: %w", fr.Path, err)
		}
		fmt.Fprint(o.Stdout, out)
	}
	return nil
}
