package render

import (
	"html"
	"strings"
)

// FormatHTML renders the inline markup rules as HTML, the way the web widget
// displays a bubble. Text is escaped before tags are added.
func FormatHTML(text string) string {
	var sb strings.Builder
	for _, span := range Format(text) {
		escaped := html.EscapeString(span.Text)
		switch span.Kind {
		case SpanBold:
			sb.WriteString("<strong>" + escaped + "</strong>")
		case SpanItalic:
			sb.WriteString("<em>" + escaped + "</em>")
		case SpanCode:
			sb.WriteString("<code>" + escaped + "</code>")
		case SpanBreak:
			sb.WriteString("<br>")
		default:
			sb.WriteString(escaped)
		}
	}
	return sb.String()
}
