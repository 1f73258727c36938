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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	return parseHCL(data, "config.hcl")
}

func parseHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Syntax *struct {
			OpenMarker     string `hcl:"open_marker,optional"`
			CloseMarker    string `hcl:"close_marker,optional"`
			SearchKeyword  string `hcl:"search_keyword,optional"`
			ReplaceKeyword string `hcl:"replace_keyword,optional"`
			KeepWhitespace bool   `hcl:"keep_whitespace,optional"`
		} `hcl:"syntax,block"`
		Matching *struct {
			Normalization string `hcl:"normalization,optional"`
		} `hcl:"matching,block"`
		Files *struct {
			Include     []string `hcl:"include,optional"`
			Ignore      []string `hcl:"ignore,optional"`
			Backup      bool     `hcl:"backup,optional"`
			Concurrency int      `hcl:"concurrency,optional"`
		} `hcl:"files,block"`
		Output string `hcl:"output,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{Output: hclCfg.Output}

	if hclCfg.Syntax != nil {
		cfg.Syntax = SyntaxConfig{
			OpenMarker:     hclCfg.Syntax.OpenMarker,
			CloseMarker:    hclCfg.Syntax.CloseMarker,
			SearchKeyword:  hclCfg.Syntax.SearchKeyword,
			ReplaceKeyword: hclCfg.Syntax.ReplaceKeyword,
			KeepWhitespace: hclCfg.Syntax.KeepWhitespace,
		}
	}
	if hclCfg.Matching != nil {
		cfg.Matching.Normalization = hclCfg.Matching.Normalization
	}
	if hclCfg.Files != nil {
		cfg.Files = FilesConfig{
			Include:     hclCfg.Files.Include,
			Ignore:      hclCfg.Files.Ignore,
			Backup:      hclCfg.Files.Backup,
			Concurrency: hclCfg.Files.Concurrency,
		}
	}

	return cfg, nil
}
