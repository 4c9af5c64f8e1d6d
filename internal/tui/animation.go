package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	goalFrames   = 10
	goalInterval = 80 * time.Millisecond

	// pendingInterval drives the loading placeholder spinner
	pendingInterval = 120 * time.Millisecond
)

// goalTickMsg advances the goal animation identified by id
type goalTickMsg struct {
	id int
}

// pendingTickMsg advances the loading placeholder
type pendingTickMsg time.Time

// goalAnimation moves the ball from the left of the header into the goal
// and shakes the net for the last frames. It runs goalFrames*goalInterval.
type goalAnimation struct {
	id     int
	frame  int
	active bool
}

// start restarts the animation; ticks from an earlier run are ignored
func (g *goalAnimation) start() tea.Cmd {
	g.id++
	g.frame = 0
	g.active = true
	return goalTick(g.id)
}

func goalTick(id int) tea.Cmd {
	return tea.Tick(goalInterval, func(time.Time) tea.Msg {
		return goalTickMsg{id: id}
	})
}

// step handles a tick and returns the next one while frames remain
func (g *goalAnimation) step(msg goalTickMsg) tea.Cmd {
	if !g.active || msg.id != g.id {
		return nil
	}
	g.frame++
	if g.frame >= goalFrames {
		g.active = false
		g.frame = 0
		return nil
	}
	return goalTick(g.id)
}

// scored reports whether the ball has reached the net
func (g goalAnimation) scored() bool {
	return g.active && g.frame >= goalFrames-3
}

func pendingTick() tea.Cmd {
	return tea.Tick(pendingInterval, func(t time.Time) tea.Msg {
		return pendingTickMsg(t)
	})
}

// view renders the pitch strip: a ball and a goal post. width is the
// available cell count.
func (g goalAnimation) view(width int) string {
	const (
		ball = "⚽"
		post = "]"
	)
	net := "#"
	if g.scored() && g.frame%2 == 0 {
		net = "≋"
	}

	goal := goalStyle.Render(post) + netStyle.Render(strings.Repeat(net, 2)) + goalStyle.Render("|")
	goalWidth := lipgloss.Width(goal)
	ballWidth := lipgloss.Width(ball)

	track := width - goalWidth - ballWidth
	if track < 1 {
		return ballStyle.Render(ball) + goal
	}

	pos := 0
	if g.active {
		pos = g.frame * track / (goalFrames - 3)
		if pos > track {
			pos = track
		}
	}

	before := pitchStyle.Render(strings.Repeat("·", pos))
	after := pitchStyle.Render(strings.Repeat("·", track-pos))
	strip := before + ballStyle.Render(ball) + after + goal

	if g.scored() {
		color := gradientColors[g.frame%len(gradientColors)]
		strip += lipgloss.NewStyle().Foreground(color).Bold(true).Render("  GOAL!")
	}
	return strip
}
