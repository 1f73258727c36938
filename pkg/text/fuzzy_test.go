package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockMatcher_Replace(t *testing.T) {
	tests := []struct {
		name          string
		normalization Normalization
		content       string
		search        string
		replace       string
		want          string
		wantSpans     []Span
	}{
		{
			name:      "extra_space_and_deeper_indent",
			content:   "class A:\n    def f() :\n            return 1\n    x = 2\n",
			search:    "def f():\n    return 1",
			replace:   "def f():\n    return 2",
			want:      "class A:\n    def f():\n        return 2\n    x = 2\n",
			wantSpans: []Span{{Start: 1, End: 2, FirstContent: 1}},
		},
		{
			name:      "blank_line_inside_span_is_consumed",
			content:   "foo\n   \nbar\nbaz\n",
			search:    "foo\n\nbar",
			replace:   "qux",
			want:      "qux\nbaz\n",
			wantSpans: []Span{{Start: 0, End: 2, FirstContent: 0}},
		},
		{
			name:      "blank_line_before_match_joins_span",
			content:   "a\n\n  foo\n  bar\nz\n",
			search:    "foo\nbar",
			replace:   "baz",
			want:      "a\n  baz\nz\n",
			wantSpans: []Span{{Start: 1, End: 3, FirstContent: 2}},
		},
		{
			name:      "indent_taken_from_first_content_line",
			content:   "x = 1\n\n    def f() :\n        return 1\ny\n",
			search:    "def f():\n    return 1",
			replace:   "def g():\n    return 2",
			want:      "x = 1\n    def g():\n        return 2\ny\n",
			wantSpans: []Span{{Start: 1, End: 3, FirstContent: 2}},
		},
		{
			name:      "leading_blank_lines_of_buffer",
			content:   "\n  \n\tfoo\n",
			search:    "foo",
			replace:   "bar",
			want:      "\tbar\n",
			wantSpans: []Span{{Start: 0, End: 2, FirstContent: 2}},
		},
		{
			name:    "only_blank_lines_left",
			content: "foo\n\n\n",
			search:  "foo\nbar",
			replace: "baz",
			want:    "foo\n\n\n",
		},
		{
			name:    "two_matches_replaced_left_to_right",
			content: "a\n b\na\n  b\n",
			search:  "a\nb",
			replace: "c",
			want:    "c\nc\n",
			wantSpans: []Span{
				{Start: 0, End: 1, FirstContent: 0},
				{Start: 2, End: 3, FirstContent: 2},
			},
		},
		{
			name:    "mismatch_aborts_attempt",
			content: "a\nX\nb\n",
			search:  "a\nb",
			replace: "c",
			want:    "a\nX\nb\n",
		},
		{
			name:      "empty_replace_deletes_span",
			content:   "keep\n  drop1\n  drop2\nkeep2\n",
			search:    "drop1\ndrop2",
			replace:   "",
			want:      "keep\nkeep2\n",
			wantSpans: []Span{{Start: 1, End: 2, FirstContent: 1}},
		},
		{
			name:    "blank_search_matches_nothing",
			content: "a\nb\n",
			search:  " \n\t\n",
			replace: "c",
			want:    "a\nb\n",
		},
		{
			name:      "last_line_without_break",
			content:   "  a\n  b",
			search:    "a\nb",
			replace:   "c\nd",
			want:      "  c\n  d",
			wantSpans: []Span{{Start: 0, End: 1, FirstContent: 0}},
		},
		{
			name:      "crlf_buffer_keeps_crlf",
			content:   "  a\r\n  b\r\nc\r\n",
			search:    "a\nb",
			replace:   "x\n  y",
			want:      "  x\r\n    y\r\nc\r\n",
			wantSpans: []Span{{Start: 0, End: 1, FirstContent: 0}},
		},
		{
			name:          "collapse_keeps_token_boundaries",
			normalization: NormalizeCollapse,
			content:       "foobar\nfoo  bar\n",
			search:        "foo bar",
			replace:       "baz",
			want:          "foobar\nbaz\n",
			wantSpans:     []Span{{Start: 1, End: 1, FirstContent: 1}},
		},
		{
			name:      "strip_ignores_token_boundaries",
			content:   "foobar\nfoo  bar\n",
			search:    "foo bar",
			replace:   "baz",
			want:      "baz\nbaz\n",
			wantSpans: []Span{{Start: 0, End: 0, FirstContent: 0}, {Start: 1, End: 1, FirstContent: 1}},
		},
		{
			name:    "case_sensitive",
			content: "Foo\n",
			search:  "foo",
			replace: "bar",
			want:    "Foo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBlockMatcher(tt.normalization)
			result := m.Replace(tt.content, tt.search, tt.replace)

			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Content)
			assert.Equal(t, tt.wantSpans, result.Spans)
			assert.Equal(t, len(tt.wantSpans), result.Count())
		})
	}
}

func TestBlockMatcher_FindSpans(t *testing.T) {
	content := "  foo(x,y)\n\n    bar\nother\nfoo(x, y)\nbar\n"

	t.Run("normalization_invariance", func(t *testing.T) {
		m := NewBlockMatcher(NormalizeStrip)
		a := m.FindSpans(content, "foo( x,y )\n\tbar")
		b := m.FindSpans(content, "foo(x, y)\n\n  bar  ")
		require.Len(t, a, 2)
		assert.Equal(t, a, b)
	})

	t.Run("spans_do_not_overlap", func(t *testing.T) {
		m := NewBlockMatcher(NormalizeStrip)
		spans := m.FindSpans(content, "foo(x,y)\nbar")
		require.Len(t, spans, 2)
		assert.Equal(t, Span{Start: 0, End: 2, FirstContent: 0}, spans[0])
		assert.Equal(t, Span{Start: 4, End: 5, FirstContent: 4}, spans[1])
		assert.Greater(t, spans[1].Start, spans[0].End)
	})

	t.Run("find_matches_replace", func(t *testing.T) {
		m := NewBlockMatcher(NormalizeStrip)
		spans := m.FindSpans(content, "bar")
		result := m.Replace(content, "bar", "baz")
		assert.Equal(t, spans, result.Spans)
	})

	t.Run("first_content_after_blank_start", func(t *testing.T) {
		m := NewBlockMatcher(NormalizeStrip)
		spans := m.FindSpans(content, "bar")
		require.Len(t, spans, 2)
		assert.Equal(t, Span{Start: 1, End: 2, FirstContent: 2}, spans[0])
		assert.Equal(t, Span{Start: 5, End: 5, FirstContent: 5}, spans[1])
	})

	t.Run("empty_content", func(t *testing.T) {
		m := NewBlockMatcher(NormalizeStrip)
		assert.Empty(t, m.FindSpans("", "foo"))
	})
}
