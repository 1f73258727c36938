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
	"unicode/utf8"
)

// 📐 Reindent moves block to targetIndent while keeping its internal nesting.
//
// The base indent is the leading whitespace of the first non-blank line,
// measured in characters. Every non-blank line loses exactly that many
// leading whitespace characters (or all of them when it has fewer) and gains
// targetIndent. Blank lines are
// emitted empty. Lines are joined with "\n" and no trailing break is added.
func Reindent(block, targetIndent string) string {
	if block == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")

	base := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			base = utf8.RuneCountInString(LeadingWhitespace(line))
			break
		}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}

		lead := LeadingWhitespace(line)
		rest := line[len(lead):]
		// base counts runes, not bytes
		if indent := []rune(lead); len(indent) >= base {
			rest = string(indent[base:]) + rest
		}
		out = append(out, targetIndent+rest)
	}

	return strings.Join(out, "\n")
}
