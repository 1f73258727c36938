package commands

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/operation"
	"github.com/walteh/reblock/pkg/status"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "restore [pattern...]",
		Short: "Restore files from the .bak copies written by files --backup",
		Example: `  reblock restore '**/*.py'
  reblock restore --root ./src '**/*.go'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "restore").Logger().WithContext(cmd.Context())

			include := args
			if len(include) == 0 {
				include = o.Config.Files.Include
			}
			if len(include) == 0 {
				return errors.Errorf("no file patterns: pass patterns as arguments or set files.include")
			}

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return errors.Errorf("resolving root %s: %w", root, err)
			}

			mgr := status.New(absRoot, zerolog.Ctx(ctx))
			results, err := operation.RestoreFiles(ctx, mgr, include)
			if err != nil {
				return errors.Errorf("restoring files: %w", err)
			}

			if o.Config.Output != config.OutputText {
				return Encode(o.Stdout, o.Config.Output, results)
			}

			if len(results) == 0 {
				o.Logger.Warning("no backup files found")
				return nil
			}

			formatter := status.NewDefaultFileFormatter()
			failed := 0
			for _, fr := range results {
				if fr.Status == status.StatusFailed {
					failed++
				}
				o.Logger.Info(formatter.FormatFileOperation(fr.Info()))
			}
			if failed > 0 {
				o.Logger.Errorf("%d of %d file(s) could not be restored", failed, len(results))
				return nil
			}
			o.Logger.Successf("restored %d file(s)", len(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory patterns are resolved against")

	return cmd
}
