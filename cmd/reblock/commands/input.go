package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/opts"
)

// stdinName selects standard input in place of a file path
const stdinName = "-"

// scriptFlags selects where the directive script comes from
type scriptFlags struct {
	inline    string
	file      string
	clipboard bool
}

func (s *scriptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.inline, "commands", "", "directive script text")
	cmd.Flags().StringVar(&s.file, "commands-file", "", "read the directive script from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&s.clipboard, "clipboard", false, "read the directive script from the clipboard")
}

// read returns the script from exactly one configured source
func (s *scriptFlags) read(cmd *cobra.Command, o *opts.RootOpts) (string, error) {
	sources := 0
	if cmd.Flags().Changed("commands") {
		sources++
	}
	if s.file != "" {
		sources++
	}
	if s.clipboard {
		sources++
	}

	switch {
	case sources == 0:
		return "", errors.Errorf("missing commands: set --commands, --commands-file or --clipboard")
	case sources > 1:
		return "", errors.Errorf("conflicting command sources: use only one of --commands, --commands-file, --clipboard")
	}

	switch {
	case s.clipboard:
		script, err := o.ReadClipboard()
		if err != nil {
			return "", errors.Errorf("reading clipboard: %w", err)
		}
		return script, nil
	case s.file != "":
		return readSource(o, s.file)
	default:
		return s.inline, nil
	}
}

// codeFlags selects where the code to transform comes from
type codeFlags struct {
	inline string
	file   string
}

func (c *codeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.inline, "original-code", "", "code to transform")
	cmd.Flags().StringVar(&c.file, "code-file", "", "read the code from a file ('-' for stdin)")
}

// provided reports whether any code source was set
func (c *codeFlags) provided(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("original-code") || c.file != ""
}

// read returns the code from exactly one configured source
func (c *codeFlags) read(cmd *cobra.Command, o *opts.RootOpts) (string, error) {
	hasInline := cmd.Flags().Changed("original-code")
	switch {
	case !hasInline && c.file == "":
		return "", errors.Errorf("missing code: set --original-code or --code-file")
	case hasInline && c.file != "":
		return "", errors.Errorf("conflicting code sources: use only one of --original-code, --code-file")
	case hasInline:
		return c.inline, nil
	default:
		return readSource(o, c.file)
	}
}

// checkStdin rejects reading standard input twice
func checkStdin(s *scriptFlags, c *codeFlags) error {
	if s.file == stdinName && c.file == stdinName {
		return errors.Errorf("only one of --commands-file and --code-file can read stdin")
	}
	return nil
}

func readSource(o *opts.RootOpts, path string) (string, error) {
	if path == stdinName {
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
