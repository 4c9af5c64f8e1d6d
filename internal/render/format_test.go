package render

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "plain",
			in:   "who won in 2022?",
			want: []Span{{SpanText, "who won in 2022?"}},
		},
		{
			name: "bold",
			in:   "**a**",
			want: []Span{{SpanBold, "a"}},
		},
		{
			name: "italic",
			in:   "*a*",
			want: []Span{{SpanItalic, "a"}},
		},
		{
			name: "code",
			in:   "run `go test`",
			want: []Span{{SpanText, "run "}, {SpanCode, "go test"}},
		},
		{
			name: "newline",
			in:   "a\nb",
			want: []Span{{SpanText, "a"}, {SpanBreak, ""}, {SpanText, "b"}},
		},
		{
			name: "bold before italic",
			in:   "**Messi** scored *twice*",
			want: []Span{{SpanBold, "Messi"}, {SpanText, " scored "}, {SpanItalic, "twice"}},
		},
		{
			name: "lazy bold matches",
			in:   "**a** and **b**",
			want: []Span{{SpanBold, "a"}, {SpanText, " and "}, {SpanBold, "b"}},
		},
		{
			name: "markers do not cross lines",
			in:   "*a\nb*",
			want: []Span{{SpanText, "*a"}, {SpanBreak, ""}, {SpanText, "b*"}},
		},
		{
			name: "unclosed marker stays literal",
			in:   "5 * 3",
			want: []Span{{SpanText, "5 * 3"}},
		},
		{
			name: "empty bold",
			in:   "****",
			want: []Span{{SpanBold, ""}},
		},
		{
			name: "code inside bold is not nested",
			in:   "**`x`**",
			want: []Span{{SpanBold, "`x`"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_PlainTextIsIdentity(t *testing.T) {
	inputs := []string{
		"hello",
		"2026 월드컵 개최지는 어디인가요?",
		"score: 3-2 (a.e.t.) <b>not html</b>",
		"   padded   ",
		"_underscores_ and ~tildes~",
	}

	for _, in := range inputs {
		spans := Format(in)
		if len(spans) != 1 || spans[0].Kind != SpanText {
			t.Errorf("Format(%q) should be a single plain span, got %+v", in, spans)
		}
		if got := PlainText(spans); got != in {
			t.Errorf("PlainText(Format(%q)) = %q", in, got)
		}
	}
}

func TestFormat_BoldLeavesNoStrayAsterisks(t *testing.T) {
	for _, in := range []string{"**a**", "x **a** y", "**a** *b*"} {
		got := PlainText(Format(in))
		if strings.Contains(got, "*") {
			t.Errorf("PlainText(Format(%q)) = %q contains '*'", in, got)
		}
	}
}

func TestPlainText(t *testing.T) {
	spans := []Span{
		{SpanBold, "Korea"},
		{SpanText, " reached the "},
		{SpanItalic, "semi-finals"},
		{SpanBreak, ""},
		{SpanCode, "2002"},
	}
	want := "Korea reached the semi-finals\n2002"
	if got := PlainText(spans); got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}
