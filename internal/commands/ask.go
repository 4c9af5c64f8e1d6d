package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/diogo/goalchat/internal/chat"
	"github.com/diogo/goalchat/internal/models"
	"github.com/diogo/goalchat/internal/render"
	"github.com/diogo/goalchat/internal/transcript"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#e5e7eb")
	colorTextMute = lipgloss.Color("#3f4f43")
	colorSuccess  = lipgloss.Color("#22c55e")
	colorWarn     = lipgloss.Color("#f59e0b")
)

// askOptions holds the ask command flags
type askOptions struct {
	raw    bool
	copy   bool
	output string
	format string
}

// NewAskCmd creates the one-shot question command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Long: `Ask the assistant a single question and print the formatted answer.
Without an argument the question is read from stdin.

Examples:
  goalchat ask "역대 월드컵 우승국을 알려주세요."
  echo "2026 개최지는?" | goalchat ask --raw
  goalchat ask -o answer.md -f markdown "최다 득점자는?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := ""
			if len(args) > 0 {
				question = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				question = string(data)
			}
			return runAsk(cmd.Context(), deps, question, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&opts.raw, "raw", "r", false, "Print the reply text without formatting")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the reply to the clipboard")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output file format: text, markdown, json or html")

	return cmd
}

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame: a ball rolling along a pitch
func (s *spinner) render() {
	const pitchWidth = 16

	pos := s.frame % pitchWidth
	var pitch strings.Builder
	for i := 0; i < pitchWidth; i++ {
		if i == pos {
			pitch.WriteString("⚽")
			continue
		}
		style := lipgloss.NewStyle().Foreground(gradientColors[(i+s.frame)%len(gradientColors)])
		pitch.WriteString(style.Render("·"))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", pitch.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runAsk sends one question through a fresh conversation and prints the reply.
// A failed request still prints the error reply, and the cause is returned for
// the exit code.
func runAsk(ctx context.Context, deps *Dependencies, question string, opts askOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := transcript.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	orch := chat.NewOrchestrator(client, chat.WithLogger(logger))
	ticket, _, err := orch.Submit(question)
	if err != nil {
		return fmt.Errorf("question cannot be empty: %w", err)
	}

	decorated := !opts.raw && isTerminal(stderr)
	var spin *spinner
	if decorated {
		spin = newSpinner(stderr, models.PendingText)
		spin.start()
	}

	result := orch.Dispatch(ctx, ticket)
	orch.Resolve(result)

	if spin != nil {
		if result.Err != nil {
			spin.stopWithError()
		} else {
			spin.stopWithSuccess(fmt.Sprintf("Done (%s)", result.Elapsed.Round(time.Millisecond)))
		}
	}

	reply, _ := orch.Conversation().LastReply()

	if opts.output != "" {
		data, err := transcript.Export(orch.Conversation().Messages(), format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	if opts.copy && result.Err == nil {
		copyReply(reply, stderr)
	}

	if opts.raw {
		fmt.Fprintln(stdout, reply)
	} else {
		width := getTerminalWidth() - 4
		if width < 40 {
			width = 40
		}
		if width > 120 {
			width = 120
		}
		renderer := render.NewRenderer(render.GetTUITheme(), &cfg.Markdown)
		fmt.Fprintln(stdout, renderer.Message(reply, models.RoleAssistant, width))
	}

	if result.Err != nil {
		return fmt.Errorf("request failed: %w", result.Err)
	}
	return nil
}

func copyReply(reply string, stderr io.Writer) {
	if err := clipboard.WriteAll(reply); err != nil {
		warnMsg := lipgloss.NewStyle().Foreground(colorWarn).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(stderr, warnMsg)
		return
	}
	fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
