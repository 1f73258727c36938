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
)

// 📍 Span is a run of buffer lines consumed by one block match.
// Indices are zero-based and inclusive.
type Span struct {
	Start        int `json:"start" yaml:"start"`
	End          int `json:"end" yaml:"end"`
	FirstContent int `json:"first_content" yaml:"first_content"` // Line whose indentation the replacement adopts
}

// 🔄 BlockResult is the outcome of one BlockMatcher.Replace call
type BlockResult struct {
	Content string
	Spans   []Span
}

// Count returns the number of spans replaced
func (r *BlockResult) Count() int {
	return len(r.Spans)
}

// 🎯 BlockMatcher locates multi-line blocks regardless of whitespace.
//
// Each buffer line and each search line is normalized; blank lines are
// skipped on the buffer side and dropped on the search side. A match attempt
// may start on any buffer line, so blank lines directly above a block belong
// to its span. An attempt fails on the first normalized line that differs
// from the next expected search line.
type BlockMatcher struct {
	normalization Normalization
}

// NewBlockMatcher creates a matcher using the given normalization
func NewBlockMatcher(n Normalization) *BlockMatcher {
	return &BlockMatcher{normalization: n}
}

// FindSpans returns the non-overlapping spans of content that match search,
// left to right, without rewriting anything.
func (m *BlockMatcher) FindSpans(content, search string) []Span {
	want := m.normalization.Block(search)
	if len(want) == 0 {
		return nil
	}

	normalized := m.normalizeLines(splitLines(content))

	var spans []Span
	for i := 0; i < len(normalized); {
		span, ok := matchAt(normalized, want, i)
		if !ok {
			i++
			continue
		}
		spans = append(spans, span)
		i = span.End + 1
	}
	return spans
}

// Replace rewrites every span matching search with replace, reindented to
// the indentation of the span's first content line.
func (m *BlockMatcher) Replace(content, search, replace string) *BlockResult {
	result := &BlockResult{Content: content}

	want := m.normalization.Block(search)
	if len(want) == 0 {
		return result
	}

	lines := splitLines(content)
	normalized := m.normalizeLines(lines)

	var out strings.Builder
	out.Grow(len(content))

	for i := 0; i < len(lines); {
		span, ok := matchAt(normalized, want, i)
		if !ok {
			out.WriteString(lines[i])
			i++
			continue
		}

		ending := lineEnding(lines[span.End])
		block := Reindent(replace, LeadingWhitespace(lines[span.FirstContent]))
		if ending == "\r\n" {
			block = strings.ReplaceAll(block, "\n", "\r\n")
		}
		if block != "" && !strings.HasSuffix(block, "\n") {
			// keep the next line from merging into the inserted block
			block += ending
		}
		out.WriteString(block)

		result.Spans = append(result.Spans, span)
		i = span.End + 1
	}

	if len(result.Spans) > 0 {
		result.Content = out.String()
	}
	return result
}

func (m *BlockMatcher) normalizeLines(lines []string) []string {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = m.normalization.Line(line)
	}
	return normalized
}

// matchAt attempts a block match starting at buffer line i.
func matchAt(normalized, want []string, i int) (Span, bool) {
	k := 0
	first := -1
	for j := i; j < len(normalized); j++ {
		if normalized[j] == "" {
			continue
		}
		if normalized[j] != want[k] {
			return Span{}, false
		}
		if first < 0 {
			first = j
		}
		k++
		if k == len(want) {
			return Span{Start: i, End: j, FirstContent: first}, true
		}
	}
	return Span{}, false
}
