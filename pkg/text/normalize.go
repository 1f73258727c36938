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

package text

import (
	"strings"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// 🧹 Normalization decides how a line is reduced before comparison
type Normalization int

const (
	// NormalizeStrip removes every whitespace character from a line, so
	// "def f() :" and "def f():" compare equal.
	NormalizeStrip Normalization = iota
	// NormalizeCollapse trims a line and collapses each whitespace run to a
	// single space, so "foo bar" and "foobar" stay distinct.
	NormalizeCollapse
)

// String returns the config name of the policy
func (n Normalization) String() string {
	switch n {
	case NormalizeCollapse:
		return "collapse"
	default:
		return "strip"
	}
}

// 🔍 ParseNormalization parses a policy name
func ParseNormalization(name string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strip":
		return NormalizeStrip, nil
	case "collapse":
		return NormalizeCollapse, nil
	default:
		return NormalizeStrip, errors.Errorf("unknown normalization %q (want collapse or strip)", name)
	}
}

// Line reduces a single line. A blank line becomes "".
func (n Normalization) Line(line string) string {
	fields := strings.Fields(line)
	if n == NormalizeCollapse {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields, "")
}

// Block reduces a block to its non-blank normalized lines.
func (n Normalization) Block(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		if norm := n.Line(line); norm != "" {
			out = append(out, norm)
		}
	}
	return out
}

// splitLines splits content into lines that keep their line endings.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineEnding returns the line break that terminates line, if any.
func lineEnding(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}

// LeadingWhitespace returns the whitespace prefix of line.
func LeadingWhitespace(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return line[:len(line)-len(trimmed)]
}
