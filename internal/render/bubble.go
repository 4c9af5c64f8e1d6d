package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/goalchat/internal/config"
	"github.com/diogo/goalchat/internal/models"
)

// Role icons shown in bubble labels
const (
	UserIcon      = "●"
	AssistantIcon = "⚽"
)

// Styles holds the lipgloss styles used to draw bubbles
type Styles struct {
	UserLabel       lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantLabel  lipgloss.Style
	AssistantBubble lipgloss.Style
	Text            lipgloss.Style
	Code            lipgloss.Style
	PendingText     lipgloss.Style
	Spinner         lipgloss.Style
}

// NewStyles builds bubble styles from a theme
func NewStyles(theme TUITheme) Styles {
	return Styles{
		UserLabel: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			MarginLeft(4),
		UserBubble: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Padding(0, 1).
			MarginLeft(4),
		AssistantLabel: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		AssistantBubble: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			MarginRight(4),
		Text: lipgloss.NewStyle().
			Foreground(theme.Text),
		Code: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Background(theme.Surface),
		PendingText: lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true),
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
	}
}

// Renderer draws message bubbles. It holds no conversation state.
type Renderer struct {
	styles   Styles
	markdown *config.MarkdownConfig
}

// NewRenderer creates a Renderer for theme. A non-nil markdown config with
// Enabled set renders assistant replies through glamour.
func NewRenderer(theme TUITheme, markdown *config.MarkdownConfig) *Renderer {
	return &Renderer{
		styles:   NewStyles(theme),
		markdown: markdown,
	}
}

// Spans applies styles to formatted spans
func (r *Renderer) Spans(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case SpanBold:
			sb.WriteString(r.styles.Text.Bold(true).Render(span.Text))
		case SpanItalic:
			sb.WriteString(r.styles.Text.Italic(true).Render(span.Text))
		case SpanCode:
			sb.WriteString(r.styles.Code.Render(span.Text))
		case SpanBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(r.styles.Text.Render(span.Text))
		}
	}
	return sb.String()
}

// Label returns the role label shown above a bubble
func (r *Renderer) Label(role models.Role) string {
	if role == models.RoleUser {
		return r.styles.UserLabel.Render(UserIcon + " You")
	}
	return r.styles.AssistantLabel.Render(AssistantIcon + " Assistant")
}

// Message renders one bubble for text sent by role
func (r *Renderer) Message(text string, role models.Role, width int) string {
	bubble := r.styles.AssistantBubble
	if role == models.RoleUser {
		bubble = r.styles.UserBubble
	}
	if width > 0 {
		bubble = bubble.Width(width)
	}

	body := r.body(text, role, width)
	return r.Label(role) + "\n" + bubble.Render(body)
}

func (r *Renderer) body(text string, role models.Role, width int) string {
	if role == models.RoleAssistant && r.markdown != nil && r.markdown.Enabled {
		opts := MarkdownOptionsFromConfig(*r.markdown, width-4)
		if rendered, err := Markdown(text, opts); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return r.Spans(Format(text))
}

// pendingFrames animates the loading placeholder
var pendingFrames = []string{"◐", "◓", "◑", "◒"}

// Pending renders the in-progress placeholder for animation frame
func (r *Renderer) Pending(frame, width int) string {
	bubble := r.styles.AssistantBubble
	if width > 0 {
		bubble = bubble.Width(width)
	}
	if frame < 0 {
		frame = 0
	}
	spin := r.styles.Spinner.Render(pendingFrames[frame%len(pendingFrames)])
	body := spin + " " + r.styles.PendingText.Render(models.PendingText)
	return r.Label(models.RoleAssistant) + "\n" + bubble.Render(body)
}
