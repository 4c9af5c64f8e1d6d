package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/chat"
	"github.com/diogo/goalchat/internal/config"
	apierrors "github.com/diogo/goalchat/internal/errors"
	"github.com/diogo/goalchat/internal/models"
	"github.com/diogo/goalchat/internal/render"
)

// replyMsg carries a dispatched request back to the UI goroutine
type replyMsg struct {
	result chat.Result
}

// EndpointSwitcher changes the endpoint replies are requested from
type EndpointSwitcher interface {
	BaseURL() string
	SetBaseURL(baseURL string) error
}

// viewNode is one entry of the rendered conversation. The loading
// placeholder uses models.PendingID.
type viewNode struct {
	id      string
	message models.Message
	pending bool
}

// Model represents the TUI state
type Model struct {
	orch      *chat.Orchestrator
	endpoints EndpointSwitcher
	renderer  *render.Renderer
	logger    *zap.Logger
	ctx       context.Context
	copyFn    func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	// State
	nodes          []viewNode
	welcome        bool
	goal           goalAnimation
	pendingFrame   int
	quickQuestions []config.QuickQuestion
	choices        []config.Endpoint
	choiceIdx      int
	inputMaxHeight int
	notice         string
	err            error
	ready          bool

	// Dimensions
	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithEndpointSwitcher enables the endpoint selector
func WithEndpointSwitcher(s EndpointSwitcher) Option {
	return func(m *Model) {
		m.endpoints = s
	}
}

// WithLogger sets the logger for UI events
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithContext sets the context passed to reply requests
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithClipboard replaces the clipboard writer, mainly for tests
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyFn = write
	}
}

// NewChatModel creates a new chat TUI model driving orch
func NewChatModel(orch *chat.Orchestrator, cfg config.Config, opts ...Option) Model {
	keys := defaultKeyMap()

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	h := help.New()
	h.Styles.ShortKey = statusKeyStyle
	h.Styles.ShortDesc = statusDescStyle
	h.Styles.ShortSeparator = statusDescStyle

	maxHeight := cfg.InputMaxHeight
	if maxHeight < minInputHeight {
		maxHeight = config.DefaultConfig().InputMaxHeight
	}

	questions := cfg.QuickQuestions
	if len(questions) > maxQuickQuestions {
		questions = questions[:maxQuickQuestions]
	}

	m := Model{
		orch:           orch,
		renderer:       render.NewRenderer(render.GetTUITheme(), &cfg.Markdown),
		logger:         zap.NewNop(),
		ctx:            context.Background(),
		copyFn:         clipboard.WriteAll,
		textarea:       newInput(keys.Newline),
		spinner:        s,
		help:           h,
		keys:           keys,
		welcome:        true,
		quickQuestions: questions,
		choices:        cfg.EndpointChoices(),
		inputMaxHeight: maxHeight,
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.endpoints != nil {
		m.choiceIdx = m.findChoice(m.endpoints.BaseURL())
	}

	return m
}

func (m Model) findChoice(baseURL string) int {
	current := strings.TrimRight(baseURL, "/")
	for i, c := range m.choices {
		if strings.TrimRight(c.URL, "/") == current {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(0, 0)
			m.ready = true
		}
		m.layout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			return m.submit(currentRequest(m.textarea))

		case key.Matches(msg, m.keys.NewChat):
			m.notice = ""
			m.err = nil
			cmd = m.apply(m.orch.Reset())
			return m, cmd

		case key.Matches(msg, m.keys.CycleEndpoint):
			m.cycleEndpoint()
			return m, nil

		case key.Matches(msg, m.keys.CopyReply):
			m.copyLastReply()
			return m, nil

		case key.Matches(msg, m.keys.Goal):
			return m, m.goal.start()

		case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if idx, ok := quickQuestionIndex(msg); ok {
			return m.quickQuestion(idx)
		}

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		growInput(&m.textarea, m.inputMaxHeight)
		m.layout()

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		cmd = m.apply(m.orch.Resolve(msg.result))
		cmds = append(cmds, cmd)

	case pendingTickMsg:
		if m.orch.Conversation().Pending() {
			m.pendingFrame++
			m.refresh()
			cmds = append(cmds, pendingTick())
		}

	case goalTickMsg:
		cmds = append(cmds, m.goal.step(msg))

	case spinner.TickMsg:
		if m.orch.Conversation().Pending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// submit hands the input to the orchestrator. Empty input is discarded
// silently; a submission while a reply is pending is refused.
func (m Model) submit(req submitRequest) (tea.Model, tea.Cmd) {
	ticket, intents, err := m.orch.Submit(req.Input)
	if err != nil {
		if errors.Is(err, apierrors.ErrBusy) {
			m.notice = "이전 답변을 기다리는 중입니다"
		}
		return m, nil
	}

	m.notice = ""
	m.err = nil
	m.pendingFrame = 0
	applied := m.apply(intents)
	return m, tea.Batch(
		applied,
		m.dispatch(ticket),
		m.spinner.Tick,
		pendingTick(),
	)
}

// quickQuestion fills the input with preset idx and submits it
func (m Model) quickQuestion(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.quickQuestions) {
		return m, nil
	}
	return m.submit(presetRequest(&m.textarea, m.quickQuestions[idx].Question))
}

// dispatch creates a command that requests the reply for t
func (m Model) dispatch(t chat.Ticket) tea.Cmd {
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		return replyMsg{result: orch.Dispatch(ctx, t)}
	}
}

// apply mirrors conversation intents onto the view
func (m *Model) apply(intents []chat.Intent) tea.Cmd {
	var cmds []tea.Cmd
	scroll := false

	for _, in := range intents {
		switch in.Kind {
		case chat.IntentAppend:
			m.nodes = append(m.nodes, viewNode{id: in.Message.ID, message: in.Message})
		case chat.IntentShowPending:
			m.nodes = append(m.nodes, viewNode{id: models.PendingID, pending: true})
		case chat.IntentRemovePending:
			m.removeNode(models.PendingID)
		case chat.IntentClearInput:
			clearInput(&m.textarea)
		case chat.IntentCollapseInput:
			collapseInput(&m.textarea)
		case chat.IntentScrollToEnd:
			scroll = true
		case chat.IntentShowWelcome:
			m.nodes = nil
			m.welcome = true
		case chat.IntentHideWelcome:
			m.welcome = false
		case chat.IntentPlayAnimation:
			cmds = append(cmds, m.goal.start())
		}
	}

	m.layout()
	if scroll && m.ready {
		m.viewport.GotoBottom()
	}
	return tea.Batch(cmds...)
}

func (m *Model) removeNode(id string) {
	kept := m.nodes[:0]
	for _, n := range m.nodes {
		if n.id != id {
			kept = append(kept, n)
		}
	}
	m.nodes = kept
}

func (m *Model) cycleEndpoint() {
	if m.endpoints == nil || len(m.choices) < 2 {
		m.notice = "다른 엔드포인트가 설정되어 있지 않습니다"
		return
	}

	next := (m.choiceIdx + 1) % len(m.choices)
	choice := m.choices[next]
	if err := m.endpoints.SetBaseURL(choice.URL); err != nil {
		m.err = err
		m.logger.Warn("endpoint switch failed", zap.String("url", choice.URL), zap.Error(err))
		return
	}

	m.choiceIdx = next
	m.err = nil
	m.notice = "Endpoint: " + choice.Name
	m.logger.Info("endpoint switched", zap.String("name", choice.Name), zap.String("url", choice.URL))
}

func (m *Model) copyLastReply() {
	reply, ok := m.orch.Conversation().LastReply()
	if !ok {
		m.notice = "복사할 답변이 없습니다"
		return
	}
	if err := m.copyFn(reply); err != nil {
		m.err = fmt.Errorf("clipboard: %w", err)
		return
	}
	m.notice = "답변을 클립보드에 복사했습니다"
}

// endpointName returns the label of the active endpoint
func (m Model) endpointName() string {
	if m.endpoints == nil || len(m.choices) == 0 {
		return ""
	}
	return m.choices[m.choiceIdx].Name
}

// layout sizes the viewport around the header, input and status bar
func (m *Model) layout() {
	if !m.ready {
		return
	}

	headerHeight := 4                      // Title and pitch strip with border
	inputHeight := m.textarea.Height() + 2 // Input with border
	statusHeight := 1                      // Status bar
	messagesBorder := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - messagesBorder
	if vpHeight < 3 {
		vpHeight = 3
	}

	contentWidth := m.width - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(contentWidth)
	m.help.Width = m.width
	m.refresh()
}

// refresh rebuilds the viewport content from the view nodes
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 0
	}

	var content strings.Builder
	for i, node := range m.nodes {
		if i > 0 {
			content.WriteString("\n")
		}
		if node.pending {
			content.WriteString(m.renderer.Pending(m.pendingFrame, bubbleWidth))
		} else {
			content.WriteString(m.renderer.Message(node.message.Text, node.message.Role, bubbleWidth))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 2
	var sections []string

	// Header
	title := []string{titleStyle.Render("⚽ World Cup Assistant")}
	if name := m.endpointName(); name != "" {
		title = append(title, hintStyle.Render("  •  "), subtitleStyle.Render(name))
	}
	headerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, title...),
		m.goal.view(contentWidth-6),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	messagesContent := m.viewport.View()
	if m.welcome {
		messagesContent = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(m.textarea.View()))

	// Status
	sections = append(sections, m.renderStatusBar())

	if m.err != nil {
		sections = append(sections, errorStyle.Render("⚠ "+m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome banner with the quick questions
func (m Model) renderWelcome() string {
	width := m.viewport.Width
	height := m.viewport.Height

	lines := []string{
		welcomeIconStyle.Width(width).Render("⚽"),
		welcomeTitleStyle.Width(width).Render("월드컵 정보 어시스턴트"),
		welcomeStyle.Width(width).Render("경기, 선수, 역사에 대해 물어보세요"),
		"",
	}
	for i, q := range m.quickQuestions {
		item := quickKeyStyle.Render(fmt.Sprintf("F%d", i+1)) + " " + quickLabelStyle.Render(q.Label)
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, item))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderStatusBar renders the notice line and key help
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.orch.Conversation().Pending():
		left = m.spinner.View() + " " + loadingStyle.Render(models.PendingText)
	case m.notice != "":
		left = noticeStyle.Render(m.notice)
	}

	bar := m.help.View(m.keys)
	if left != "" {
		bar = left + statusDescStyle.Render("  │  ") + bar
	}
	return statusBarStyle.Width(m.width).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(orch *chat.Orchestrator, cfg config.Config, opts ...Option) error {
	m := NewChatModel(orch, cfg, opts...)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
