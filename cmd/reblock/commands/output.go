package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/operation"
)

// Encode writes v as JSON or YAML
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return errors.Errorf("closing YAML encoder: %w", err)
		}
		return nil
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		return errors.Errorf("format %q cannot be encoded", format)
	}
}

// writeResultText prints the run log to stderr and the modified code to stdout
func writeResultText(o *opts.RootOpts, res *operation.Result) {
	faint := color.New(color.Faint)
	for _, entry := range res.Log {
		faint.Fprintln(o.Stderr, entry)
	}

	switch {
	case res.Changed():
		o.Logger.Successf("%d exact, %d block replacement(s)", res.Primary, res.Secondary)
	case len(res.Outcomes) > 0:
		o.Logger.Warning("no directive matched; code left unchanged")
	default:
		o.Logger.Warning("no directives applied")
	}

	fmt.Fprint(o.Stdout, res.ModifiedCode)
}

// renderTable writes rows with a header line using pterm
func renderTable(w io.Writer, rows [][]string) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
