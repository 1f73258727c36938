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

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/reblock/pkg/directive"
	"github.com/walteh/reblock/pkg/text"
)

// 📤 Output formats understood by the CLI
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// OutputFormats lists every valid output format
var OutputFormats = []string{OutputJSON, OutputYAML, OutputText}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔤 SyntaxConfig configures the directive grammar
type SyntaxConfig struct {
	OpenMarker     string `json:"open_marker" yaml:"open_marker"`
	CloseMarker    string `json:"close_marker" yaml:"close_marker"`
	SearchKeyword  string `json:"search_keyword" yaml:"search_keyword"`
	ReplaceKeyword string `json:"replace_keyword" yaml:"replace_keyword"`
	KeepWhitespace bool   `json:"keep_whitespace" yaml:"keep_whitespace"`
}

// 🎯 MatchingConfig configures the block matcher
type MatchingConfig struct {
	Normalization string `json:"normalization" yaml:"normalization"` // strip or collapse
}

// 📁 FilesConfig configures the files command
type FilesConfig struct {
	Include     []string `json:"include" yaml:"include"`         // Doublestar patterns selecting files
	Ignore      []string `json:"ignore" yaml:"ignore"`           // Doublestar patterns excluding files
	Backup      bool     `json:"backup" yaml:"backup"`           // Keep .bak copies of modified files
	Concurrency int      `json:"concurrency" yaml:"concurrency"` // Parallel transforms, 0 for the default
}

// 📚 Config represents the complete configuration
type Config struct {
	Syntax   SyntaxConfig   `json:"syntax" yaml:"syntax"`
	Matching MatchingConfig `json:"matching" yaml:"matching"`
	Files    FilesConfig    `json:"files" yaml:"files"`
	Output   string         `json:"output" yaml:"output"`

	location string
}

// 🏭 Default returns a config with every default filled in
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset values
func (cfg *Config) ApplyDefaults() {
	def := directive.DefaultSyntax()
	if cfg.Syntax.OpenMarker == "" {
		cfg.Syntax.OpenMarker = def.OpenMarker
	}
	if cfg.Syntax.CloseMarker == "" {
		cfg.Syntax.CloseMarker = def.CloseMarker
	}
	if cfg.Syntax.SearchKeyword == "" {
		cfg.Syntax.SearchKeyword = def.SearchKeyword
	}
	if cfg.Syntax.ReplaceKeyword == "" {
		cfg.Syntax.ReplaceKeyword = def.ReplaceKeyword
	}
	if cfg.Matching.Normalization == "" {
		cfg.Matching.Normalization = text.NormalizeStrip.String()
	}
	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate fills defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	cfg.ApplyDefaults()

	if err := cfg.DirectiveSyntax().Validate(); err != nil {
		return errors.Errorf("syntax: %w", err)
	}

	if _, err := text.ParseNormalization(cfg.Matching.Normalization); err != nil {
		return errors.Errorf("matching.normalization: %w", err)
	}

	if cfg.Files.Concurrency < 0 {
		return errors.Errorf("files.concurrency must not be negative, got %d", cfg.Files.Concurrency)
	}

	for _, pattern := range cfg.Files.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("files.include: invalid pattern %q", pattern)
		}
	}
	for _, pattern := range cfg.Files.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("files.ignore: invalid pattern %q", pattern)
		}
	}

	if !ValidOutput(cfg.Output) {
		return errors.Errorf("output must be one of %s, got %q", strings.Join(OutputFormats, ", "), cfg.Output)
	}

	return nil
}

// ValidOutput reports whether format names a known output format
func ValidOutput(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// 🔤 DirectiveSyntax converts the syntax section for the parser
func (cfg *Config) DirectiveSyntax() directive.Syntax {
	return directive.Syntax{
		OpenMarker:     cfg.Syntax.OpenMarker,
		CloseMarker:    cfg.Syntax.CloseMarker,
		SearchKeyword:  cfg.Syntax.SearchKeyword,
		ReplaceKeyword: cfg.Syntax.ReplaceKeyword,
		KeepWhitespace: cfg.Syntax.KeepWhitespace,
	}
}

// 🧹 Normalization returns the configured line normalization
func (cfg *Config) Normalization() text.Normalization {
	n, err := text.ParseNormalization(cfg.Matching.Normalization)
	if err != nil {
		return text.NormalizeStrip
	}
	return n
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s%s…%s %s%s…%s normalization=%s output=%s",
		cfg.Syntax.SearchKeyword, cfg.Syntax.OpenMarker, cfg.Syntax.CloseMarker,
		cfg.Syntax.ReplaceKeyword, cfg.Syntax.OpenMarker, cfg.Syntax.CloseMarker,
		cfg.Matching.Normalization, cfg.Output)
}
