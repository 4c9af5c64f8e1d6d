// Package render turns conversation messages into terminal output.
package render

import (
	"regexp"
	"strings"
)

// SpanKind classifies a piece of formatted message text
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanBreak
)

// Span is one run of message text with a single format
type Span struct {
	Kind SpanKind
	Text string
}

type formatRule struct {
	kind    SpanKind
	pattern *regexp.Regexp
}

// formatRules run in order; each only scans text earlier rules left plain,
// so bold must come before italic.
var formatRules = []formatRule{
	{kind: SpanBold, pattern: regexp.MustCompile(`\*\*(.*?)\*\*`)},
	{kind: SpanItalic, pattern: regexp.MustCompile(`\*(.*?)\*`)},
	{kind: SpanCode, pattern: regexp.MustCompile("`(.*?)`")},
	{kind: SpanBreak, pattern: regexp.MustCompile(`\n`)},
}

// Format splits text into spans using the inline markup rules:
// **bold**, *italic*, `code` and newline line breaks. Formatting never nests.
func Format(text string) []Span {
	if text == "" {
		return nil
	}
	spans := []Span{{Kind: SpanText, Text: text}}
	for _, rule := range formatRules {
		spans = rule.apply(spans)
	}
	return spans
}

func (r formatRule) apply(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != SpanText {
			out = append(out, span)
			continue
		}

		last := 0
		for _, m := range r.pattern.FindAllStringSubmatchIndex(span.Text, -1) {
			if m[0] > last {
				out = append(out, Span{Kind: SpanText, Text: span.Text[last:m[0]]})
			}
			inner := ""
			if len(m) >= 4 && m[2] >= 0 {
				inner = span.Text[m[2]:m[3]]
			}
			out = append(out, Span{Kind: r.kind, Text: inner})
			last = m[1]
		}
		if last < len(span.Text) {
			out = append(out, Span{Kind: SpanText, Text: span.Text[last:]})
		}
	}
	return out
}

// PlainText returns the visible text of spans with markup removed
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		if span.Kind == SpanBreak {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}
