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

// Package directive parses search/replace scripts into ordered commands.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Default wire grammar
const (
	DefaultOpenMarker     = "《"
	DefaultCloseMarker    = "》"
	DefaultSearchKeyword  = "search:"
	DefaultReplaceKeyword = "replace:"
)

// 🔧 Syntax describes how directives are written in a script
type Syntax struct {
	OpenMarker     string // Opens a content block
	CloseMarker    string // Closes a content block, first one wins
	SearchKeyword  string // Introduces the search block
	ReplaceKeyword string // Introduces the replace block
	KeepWhitespace bool   // Skip trimming of extracted content
}

// 🏭 DefaultSyntax returns the 《》 grammar
func DefaultSyntax() Syntax {
	return Syntax{
		OpenMarker:     DefaultOpenMarker,
		CloseMarker:    DefaultCloseMarker,
		SearchKeyword:  DefaultSearchKeyword,
		ReplaceKeyword: DefaultReplaceKeyword,
	}
}

// 🔍 Validate checks that the syntax can be parsed unambiguously
func (s Syntax) Validate() error {
	if s.OpenMarker == "" {
		return errors.Errorf("open marker is required")
	}
	if s.CloseMarker == "" {
		return errors.Errorf("close marker is required")
	}
	if s.OpenMarker == s.CloseMarker {
		return errors.Errorf("open and close markers must differ, both are %q", s.OpenMarker)
	}
	if strings.TrimSpace(s.SearchKeyword) == "" {
		return errors.Errorf("search keyword is required")
	}
	if strings.TrimSpace(s.ReplaceKeyword) == "" {
		return errors.Errorf("replace keyword is required")
	}
	if s.SearchKeyword == s.ReplaceKeyword {
		return errors.Errorf("search and replace keywords must differ, both are %q", s.SearchKeyword)
	}
	return nil
}

// 📝 Command is one parsed search/replace pair
type Command struct {
	Search  string `json:"search" yaml:"search"`
	Replace string `json:"replace" yaml:"replace"`
}

// ⚠️ Diagnostic explains why parsing stopped early
type Diagnostic struct {
	Offset  int    // Byte offset in the script where parsing stopped
	Message string // Human readable reason
}

func (d *Diagnostic) String() string {
	return d.Message
}

// 🎯 Parser extracts commands from scripts written in one Syntax
type Parser struct {
	syntax    Syntax
	searchRe  *regexp.Regexp
	replaceRe *regexp.Regexp
}

// 🏭 NewParser creates a parser for the given syntax
func NewParser(syntax Syntax) (*Parser, error) {
	if err := syntax.Validate(); err != nil {
		return nil, errors.Errorf("validating syntax: %w", err)
	}
	return &Parser{
		syntax:    syntax,
		searchRe:  keywordPattern(syntax.SearchKeyword, syntax.OpenMarker),
		replaceRe: keywordPattern(syntax.ReplaceKeyword, syntax.OpenMarker),
	}, nil
}

// keywordPattern matches a keyword followed by optional whitespace and the open marker.
func keywordPattern(keyword, open string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(keyword) + `\s*` + regexp.QuoteMeta(open))
}

// Parse parses script with the default syntax.
func Parse(script string) ([]Command, *Diagnostic) {
	p, _ := NewParser(DefaultSyntax())
	return p.Parse(script)
}

// 📖 Parse walks the script left to right and collects commands in order.
//
// Parsing stops at the first malformed directive. Commands collected before
// that point are always returned, together with a Diagnostic naming where
// parsing stopped. A nil Diagnostic means the whole script was consumed.
func (p *Parser) Parse(script string) ([]Command, *Diagnostic) {
	var commands []Command
	cursor := 0

	for cursor < len(script) {
		loc := p.searchRe.FindStringIndex(script[cursor:])
		if loc == nil {
			rest := strings.TrimSpace(script[cursor:])
			if rest != "" && !strings.HasPrefix(rest, "#") {
				return commands, &Diagnostic{
					Offset: cursor,
					Message: fmt.Sprintf("parse: no further '%s%s' directive found after offset %d",
						p.syntax.SearchKeyword, p.syntax.OpenMarker, cursor),
				}
			}
			return commands, nil
		}

		searchStart := cursor + loc[1]
		search, next, ok := p.extract(script, searchStart)
		if !ok {
			return commands, p.missingClose(p.syntax.SearchKeyword, searchStart)
		}

		loc = p.replaceRe.FindStringIndex(script[next:])
		if loc == nil {
			return commands, &Diagnostic{
				Offset: next,
				Message: fmt.Sprintf("parse: missing '%s%s' after '%s%s%s%s' (offset %d)",
					p.syntax.ReplaceKeyword, p.syntax.OpenMarker,
					p.syntax.SearchKeyword, p.syntax.OpenMarker, head(search, 20), p.syntax.CloseMarker, next),
			}
		}

		replaceStart := next + loc[1]
		replace, next, ok := p.extract(script, replaceStart)
		if !ok {
			return commands, p.missingClose(p.syntax.ReplaceKeyword, replaceStart)
		}

		commands = append(commands, Command{
			Search:  p.clean(search),
			Replace: p.clean(replace),
		})
		cursor = next
	}

	return commands, nil
}

// extract returns the text between start and the next close marker, and the
// offset just past that marker.
func (p *Parser) extract(script string, start int) (string, int, bool) {
	end := strings.Index(script[start:], p.syntax.CloseMarker)
	if end == -1 {
		return "", start, false
	}
	return script[start : start+end], start + end + len(p.syntax.CloseMarker), true
}

func (p *Parser) missingClose(keyword string, offset int) *Diagnostic {
	return &Diagnostic{
		Offset: offset,
		Message: fmt.Sprintf("parse: missing closing marker '%s' for '%s' content starting at offset %d",
			p.syntax.CloseMarker, keyword, offset),
	}
}

func (p *Parser) clean(content string) string {
	if p.syntax.KeepWhitespace {
		return content
	}
	return strings.TrimSpace(content)
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
