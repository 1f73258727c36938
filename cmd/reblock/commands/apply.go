package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/operation"
	"github.com/walteh/reblock/pkg/status"
)

// NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var (
		script     scriptFlags
		code       codeFlags
		diff       bool
		copyToClip bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a directive script to a piece of code",
		Long: `Apply runs every search/replace directive of a script against the code, in order.
Each directive is tried as an exact substring first, then as a whitespace-insensitive
block whose replacement is reindented to match the code.

The result (modified code, run log and per-directive outcomes) is printed as JSON,
YAML or text. Unmatched directives are logged and skipped; they never fail the command.`,
		Example: `  reblock apply --commands 'search:《old_name》 replace:《new_name》' --original-code 'x = old_name'
  reblock apply --commands-file edits.txt --code-file main.py --output text > main.py.new
  cat main.py | reblock apply --clipboard --code-file - --diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			if err := checkStdin(&script, &code); err != nil {
				return err
			}
			commands, err := script.read(cmd, o)
			if err != nil {
				return err
			}
			original, err := code.read(cmd, o)
			if err != nil {
				return err
			}

			res, err := operation.Transform(ctx, commands, original,
				operation.WithSyntax(o.Config.DirectiveSyntax()),
				operation.WithNormalization(o.Config.Normalization()),
			)
			if err != nil {
				return errors.Errorf("transforming code: %w", err)
			}

			if copyToClip {
				if err := o.WriteClipboard(res.ModifiedCode); err != nil {
					return errors.Errorf("writing clipboard: %w", err)
				}
			}

			if diff {
				name := code.file
				if name == "" || name == stdinName {
					name = "code"
				}
				out, err := status.UnifiedDiff(name, original, res.ModifiedCode)
				if err != nil {
					return err
				}
				fmt.Fprint(o.Stdout, out)
				return nil
			}

			if o.Config.Output == config.OutputText {
				writeResultText(o, res)
				return nil
			}
			return Encode(o.Stdout, o.Config.Output, res)
		},
	}

	script.register(cmd)
	code.register(cmd)
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff instead of the result")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "copy the modified code to the clipboard")

	return cmd
}
