// Package transcript writes a finished conversation to a file-friendly format.
package transcript

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/diogo/goalchat/internal/models"
	"github.com/diogo/goalchat/internal/render"
)

// Format selects the transcript encoding
type Format string

const (
	// FormatText writes only the last assistant reply
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// Formats lists the accepted format names
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatHTML}
}

// ParseFormat maps a flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown transcript format %q (available: %v)", s, Formats())
}

// Export encodes msgs in the given format
func Export(msgs []models.Message, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(lastReply(msgs)), nil
	case FormatMarkdown:
		return []byte(ToMarkdown(msgs)), nil
	case FormatJSON:
		return ToJSON(msgs)
	case FormatHTML:
		return []byte(ToHTML(msgs)), nil
	}
	return nil, fmt.Errorf("unknown transcript format %q", format)
}

func lastReply(msgs []models.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == models.RoleAssistant {
			return msgs[i].Text
		}
	}
	return ""
}

func roleTitle(msg models.Message) string {
	if msg.IsUser() {
		return "User"
	}
	return "Assistant"
}

// ToMarkdown renders the conversation as a Markdown document. Message text is
// written as is since the inline markup is already Markdown.
func ToMarkdown(msgs []models.Message) string {
	var sb strings.Builder

	sb.WriteString("# goalchat\n\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n\n---\n\n", len(msgs)))

	for i, msg := range msgs {
		sb.WriteString("## ")
		sb.WriteString(roleTitle(msg))
		if !msg.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.CreatedAt.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(msgs)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type exportMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type exportConversation struct {
	ExportedAt time.Time       `json:"exported_at"`
	Messages   []exportMessage `json:"messages"`
}

// ToJSON encodes the conversation as indented JSON
func ToJSON(msgs []models.Message) ([]byte, error) {
	export := exportConversation{
		ExportedAt: time.Now().UTC(),
		Messages:   make([]exportMessage, len(msgs)),
	}
	for i, msg := range msgs {
		export.Messages[i] = exportMessage{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
	}
	return json.MarshalIndent(export, "", "  ")
}

// ToHTML renders the conversation as a standalone page using the same inline
// markup the web widget shows.
func ToHTML(msgs []models.Message) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>goalchat</title></head><body>\n")
	sb.WriteString("<div class=\"chat-messages\">\n")
	for _, msg := range msgs {
		sb.WriteString(fmt.Sprintf("<div class=\"message %s-message\" id=\"%s\">", msg.Role, html.EscapeString(msg.ID)))
		sb.WriteString(render.FormatHTML(msg.Text))
		sb.WriteString("</div>\n")
	}
	sb.WriteString("</div>\n</body></html>\n")

	return sb.String()
}
