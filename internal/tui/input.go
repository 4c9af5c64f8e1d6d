package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
)

// minInputHeight is the collapsed height of the input box
const minInputHeight = 1

// submitRequest is what the input handler hands to the orchestrator
type submitRequest struct {
	Input string
}

// currentRequest captures the textarea value as a submission
func currentRequest(ta textarea.Model) submitRequest {
	return submitRequest{Input: ta.Value()}
}

// presetRequest fills ta with a quick question and returns it as a submission
func presetRequest(ta *textarea.Model, question string) submitRequest {
	ta.SetValue(question)
	return currentRequest(*ta)
}

// newInput creates the message textarea. Enter is left unbound so the model
// can treat it as submit; Alt+Enter and Ctrl+J insert newlines.
func newInput(newline key.Binding) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "월드컵에 대해 무엇이든 물어보세요..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(minInputHeight)
	ta.KeyMap.InsertNewline = newline
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	return ta
}

// inputHeight returns the visible height for lines of input, clamped to
// [minInputHeight, max]. Past max the textarea scrolls internally.
func inputHeight(lines, max int) int {
	if max < minInputHeight {
		max = minInputHeight
	}
	if lines < minInputHeight {
		return minInputHeight
	}
	if lines > max {
		return max
	}
	return lines
}

// visualRows counts the rows value occupies when soft-wrapped at width.
// Every logical line takes at least one row.
func visualRows(value string, width int) int {
	lines := strings.Split(value, "\n")
	if width <= 0 {
		return len(lines)
	}
	rows := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w == 0 {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	return rows
}

// growInput resizes ta to fit its wrapped content
func growInput(ta *textarea.Model, max int) {
	ta.SetHeight(inputHeight(visualRows(ta.Value(), ta.Width()), max))
}

// clearInput empties ta and returns it to its default height
func clearInput(ta *textarea.Model) {
	ta.Reset()
	collapseInput(ta)
}

// collapseInput returns ta to its default height, keeping its value
func collapseInput(ta *textarea.Model) {
	ta.SetHeight(minInputHeight)
}
