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

package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/cmd/reblock/commands"
	"github.com/walteh/reblock/cmd/reblock/opts"
	"github.com/walteh/reblock/pkg/config"
	"github.com/walteh/reblock/pkg/log"
	"github.com/walteh/reblock/pkg/text"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile    string
	debug         bool
	output        *opts.Enum
	normalization *opts.Enum
}

// NewRootCmd builds the reblock command tree around o
func NewRootCmd(o *opts.RootOpts) *cobra.Command {
	flags := &rootFlags{
		output:        opts.NewEnum("", config.OutputFormats...),
		normalization: opts.NewEnum("", text.NormalizeStrip.String(), text.NormalizeCollapse.String()),
	}

	rootCmd := &cobra.Command{
		Use:   "reblock",
		Short: "Apply search/replace directives to code, tolerating whitespace drift",
		Long: `reblock applies ordered search/replace directives to source text.

Each directive is written as
  search:《text to find》 replace:《replacement》
and is tried as an exact substring first. When that fails, the search is
matched line by line ignoring whitespace and blank lines, and the replacement
is reindented to the indentation of the matched block.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .reblock.{yaml,yml,json,hcl} or .reblockrc in the working directory)")
	pf.BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	pf.VarP(flags.output, "output", "o", "output format: "+strings.Join(config.OutputFormats, ", "))
	pf.Var(flags.normalization, "normalization", "whitespace normalization for block matching: strip, collapse")

	rootCmd.SetIn(o.Stdin)
	rootCmd.SetOut(o.Stdout)
	rootCmd.SetErr(o.Stderr)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewFilesCmd(o),
		commands.NewParseCmd(o),
		commands.NewRestoreCmd(o),
		NewVersionCmd(o),
	)

	return rootCmd
}

// setup installs the loggers and resolves the config before any command runs
func setup(cmd *cobra.Command, o *opts.RootOpts, flags *rootFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.WarnLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = o.Stderr
	})).Level(level).With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	cfg, err := config.Resolve(ctx, flags.configFile, ".")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = flags.output.String()
	}
	if cmd.Flags().Changed("normalization") {
		cfg.Matching.Normalization = flags.normalization.String()
	}

	o.Config = cfg
	o.Logger = log.NewWithZerolog(o.Stderr, zlog)

	zlog.Debug().Str("config", cfg.Location()).Stringer("settings", cfg).Msg("configuration resolved")

	cmd.SetContext(log.NewContext(ctx, o.Logger))
	return nil
}
