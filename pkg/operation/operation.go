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
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/pkg/directive"
	"github.com/walteh/reblock/pkg/log"
	"github.com/walteh/reblock/pkg/text"
)

// previewLimit caps how many characters of a directive are echoed to the log
const previewLimit = 100

// 🎯 Strategy names the matcher that handled a directive
type Strategy string

const (
	StrategyNone  Strategy = "none"
	StrategyExact Strategy = "exact"
	StrategyBlock Strategy = "block"
)

// 🔧 Options controls a Transform run
type Options struct {
	Syntax        directive.Syntax
	Normalization text.Normalization
}

// Option configures Options
type Option func(*Options)

// WithSyntax sets the directive grammar
func WithSyntax(s directive.Syntax) Option {
	return func(o *Options) {
		o.Syntax = s
	}
}

// WithNormalization sets the block matcher's line normalization
func WithNormalization(n text.Normalization) Option {
	return func(o *Options) {
		o.Normalization = n
	}
}

func newOptions(opts ...Option) Options {
	o := Options{
		Syntax:        directive.DefaultSyntax(),
		Normalization: text.NormalizeStrip,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateOptions reports whether opts describe a usable run
func ValidateOptions(opts ...Option) error {
	o := newOptions(opts...)
	if err := o.Syntax.Validate(); err != nil {
		return errors.Errorf("validating syntax: %w", err)
	}
	return nil
}

// 📋 Outcome records what happened to one directive
type Outcome struct {
	Index     int               `json:"index" yaml:"index"`
	Command   directive.Command `json:"command" yaml:"command"`
	Strategy  Strategy          `json:"strategy" yaml:"strategy"`
	Primary   int               `json:"primary" yaml:"primary"`
	Secondary int               `json:"secondary" yaml:"secondary"`
	Spans     []text.Span       `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// Matched reports whether the directive changed the buffer
func (o Outcome) Matched() bool {
	return o.Strategy != StrategyNone
}

// 📦 Result is the outcome of one Transform run
type Result struct {
	ModifiedCode string    `json:"modified_code" yaml:"modified_code"`
	Log          []string  `json:"log" yaml:"log"`
	Outcomes     []Outcome `json:"outcomes" yaml:"outcomes"`
	Primary      int       `json:"primary" yaml:"primary"`
	Secondary    int       `json:"secondary" yaml:"secondary"`
	Diagnostic   string    `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// Changed reports whether any directive matched
func (r *Result) Changed() bool {
	return r.Primary+r.Secondary > 0
}

// 🔄 Transform applies every directive in script to code, in order.
//
// Each directive is tried as an exact substring first; when that finds
// nothing, the whitespace-insensitive block matcher runs and the replacement
// is reindented to the matched block. A directive that matches neither way
// is logged and skipped. Unmatched or malformed directives never produce an
// error; only an invalid syntax option does.
func Transform(ctx context.Context, script, code string, opts ...Option) (*Result, error) {
	o := newOptions(opts...)

	parser, err := directive.NewParser(o.Syntax)
	if err != nil {
		return nil, errors.Errorf("creating parser: %w", err)
	}

	journal := log.NewJournal(ctx)
	result := &Result{Outcomes: []Outcome{}}

	commands, diag := parser.Parse(script)
	if diag != nil {
		result.Diagnostic = diag.Message
	}

	if len(commands) == 0 {
		if diag != nil {
			journal.Add(diag.Message)
		} else {
			journal.Add("no search/replace directives found; code left unchanged")
		}
		result.ModifiedCode = ensureTrailingNewline(code)
		result.Log = journal.Entries()
		return result, nil
	}

	logger := zerolog.Ctx(ctx)
	exact := text.NewExactReplacer()
	block := text.NewBlockMatcher(o.Normalization)

	journal.Addf("parsed %d search/replace directive(s)", len(commands))
	if diag != nil {
		journal.Add(diag.Message)
	}

	current := code
	for i, cmd := range commands {
		journal.Addf("--- directive %d ---", i+1)
		journal.Addf("search: '%s'", preview(cmd.Search))
		journal.Addf("replace: '%s'", preview(cmd.Replace))

		outcome := Outcome{Index: i, Command: cmd, Strategy: StrategyNone}

		if updated, count := exact.Replace(current, cmd.Search, cmd.Replace); count > 0 {
			journal.Addf("exact match: replaced %d occurrence(s)", count)
			current = updated
			outcome.Strategy = StrategyExact
			outcome.Primary = count
		} else {
			journal.Add("exact match: not found, trying whitespace-insensitive block match")
			if len(o.Normalization.Block(cmd.Search)) == 0 {
				journal.Add("  block match: search is empty after normalization, skipped")
			} else {
				res := block.Replace(current, cmd.Search, cmd.Replace)
				for _, span := range res.Spans {
					journal.Addf("  block match: replaced lines %d through %d", span.Start+1, span.End+1)
				}
				if res.Count() > 0 {
					journal.Addf("  block match: completed with %d replacement(s)", res.Count())
					current = res.Content
					outcome.Strategy = StrategyBlock
					outcome.Secondary = res.Count()
					outcome.Spans = res.Spans
				}
			}
		}

		if !outcome.Matched() {
			journal.Add("no match: directive skipped")
		}

		logger.Debug().
			Int("directive", i+1).
			Str("strategy", string(outcome.Strategy)).
			Int("count", outcome.Primary+outcome.Secondary).
			Msg("directive applied")

		result.Outcomes = append(result.Outcomes, outcome)
		result.Primary += outcome.Primary
		result.Secondary += outcome.Secondary
	}

	journal.Add("--- all directives processed ---")
	journal.Addf("total: %d exact replacement(s), %d block replacement(s)", result.Primary, result.Secondary)

	result.ModifiedCode = ensureTrailingNewline(current)
	result.Log = journal.Entries()
	return result, nil
}

// preview shortens s for the log and makes line breaks visible
func preview(s string) string {
	truncated := false
	if utf8.RuneCountInString(s) > previewLimit {
		s = string([]rune(s)[:previewLimit])
		truncated = true
	}
	s = strings.ReplaceAll(s, "\n", "\\n")
	if truncated {
		s += "..."
	}
	return s
}

func ensureTrailingNewline(code string) string {
	if code != "" && !strings.HasSuffix(code, "\n") {
		return code + "\n"
	}
	return code
}
