package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/directive"
	"github.com/walteh/reblock/pkg/text"
)

// parsedDirective is one directive as reported by the parse command
type parsedDirective struct {
	Index   int         `json:"index" yaml:"index"`
	Search  string      `json:"search" yaml:"search"`
	Replace string      `json:"replace" yaml:"replace"`
	Exact   *int        `json:"exact,omitempty" yaml:"exact,omitempty"`
	Spans   []text.Span `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// parseReport is the parse command output
type parseReport struct {
	Directives []parsedDirective `json:"directives" yaml:"directives"`
	Diagnostic string            `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
	Offset     *int              `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// NewParseCmd creates the parse command
func NewParseCmd(o *opts.RootOpts) *cobra.Command {
	var (
		script scriptFlags
		code   codeFlags
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "List the directives of a script without applying them",
		Long: `Parse reads a directive script and lists the search/replace pairs it contains,
along with the diagnostic that stopped parsing, if any.

With --code-file or --original-code, every directive is also probed against the
code independently: the exact occurrence count and the block spans it would match
are reported. Probing never modifies anything.`,
		Example: `  reblock parse --commands-file edits.txt
  reblock parse --commands-file edits.txt --code-file main.py --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkStdin(&script, &code); err != nil {
				return err
			}
			commands, err := script.read(cmd, o)
			if err != nil {
				return err
			}

			probe := code.provided(cmd)
			var original string
			if probe {
				if original, err = code.read(cmd, o); err != nil {
					return err
				}
			}

			parser, err := directive.NewParser(o.Config.DirectiveSyntax())
			if err != nil {
				return errors.Errorf("creating parser: %w", err)
			}
			cmds, diag := parser.Parse(commands)

			report := parseReport{Directives: make([]parsedDirective, 0, len(cmds))}
			if diag != nil {
				report.Diagnostic = diag.Message
				report.Offset = &diag.Offset
			}

			exact := text.NewExactReplacer()
			block := text.NewBlockMatcher(o.Config.Normalization())
			for i, c := range cmds {
				pd := parsedDirective{Index: i + 1, Search: c.Search, Replace: c.Replace}
				if probe {
					_, n := exact.Replace(original, c.Search, c.Replace)
					pd.Exact = &n
					pd.Spans = block.FindSpans(original, c.Search)
				}
				report.Directives = append(report.Directives, pd)
			}

			if o.Config.Output != config.OutputText {
				return Encode(o.Stdout, o.Config.Output, report)
			}
			return writeParseText(o, report, probe)
		},
	}

	script.register(cmd)
	code.register(cmd)

	return cmd
}

func writeParseText(o *opts.RootOpts, report parseReport, probe bool) error {
	header := []string{"#", "search", "replace"}
	if probe {
		header = append(header, "exact", "block")
	}
	rows := [][]string{header}

	for _, d := range report.Directives {
		row := []string{fmt.Sprint(d.Index), oneLine(d.Search), oneLine(d.Replace)}
		if probe {
			spans := make([]string, 0, len(d.Spans))
			for _, s := range d.Spans {
				// 1-based, matching the run log
				spans = append(spans, fmt.Sprintf("%d-%d", s.Start+1, s.End+1))
			}
			row = append(row, fmt.Sprint(*d.Exact), strings.Join(spans, " "))
		}
		rows = append(rows, row)
	}

	if len(report.Directives) == 0 {
		o.Logger.Warning("no search/replace directives found")
	} else if err := renderTable(o.Stdout, rows); err != nil {
		return err
	}

	if report.Diagnostic != "" {
		o.Logger.Warning(report.Diagnostic)
	}
	return nil
}

// oneLine shortens a directive body for a table cell
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if r := []rune(s); len(r) > 40 {
		return string(r[:40]) + "..."
	}
	return s
}
