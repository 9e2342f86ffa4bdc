package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/cvischat/internal/api"
	"github.com/diogo/cvischat/internal/chat"
	"github.com/diogo/cvischat/internal/render"
)

// Message types for the TUI
type (
	// replyMsg carries the outcome of one exchange back to the event loop
	replyMsg struct {
		id  string
		res chat.Result
	}
	clipboardMsg struct {
		err error
	}
)

// Model represents the TUI state
type Model struct {
	ctx     context.Context
	client  api.GenerateClientInterface
	session *chat.Session
	logger  zerolog.Logger

	renderOpts render.Options
	copyFn     func(string) error
	keys       keyMap

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	ready  bool
	notice string

	// rendered caches markdown for received bubbles by message index
	rendered      map[int]string
	renderedWidth int

	width        int
	height       int
	contentWidth int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(ctx context.Context, client api.GenerateClientInterface, session *chat.Session, logger zerolog.Logger, opts render.Options) Model {
	keys := defaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	vp := viewport.New(0, 0)
	vp.KeyMap = viewportKeyMap()

	return Model{
		ctx:        ctx,
		client:     client,
		session:    session,
		logger:     logger,
		renderOpts: opts,
		copyFn:     clipboard.WriteAll,
		keys:       keys,
		viewport:   vp,
		textarea:   ta,
		spinner:    s,
		rendered:   make(map[int]string),
	}
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
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.session.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Copy):
			return m.copyLastReply()

		// alt+enter also reports as enter; it belongs to the textarea
		case msg.Type == tea.KeyEnter && !msg.Alt:
			return m.submit()
		}

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		if m.session.Complete(msg.id, msg.res) {
			m.updateViewport()
			m.viewport.GotoBottom()
		}

	case clipboardMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
		} else {
			m.notice = "reply copied to clipboard"
		}

	case spinner.TickMsg:
		if m.session.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
			m.updateViewport()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands the pending input to the session and starts the request
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "/quit" || input == "/exit" {
		m.session.Close()
		return m, tea.Quit
	}

	ex, err := m.session.Submit(m.textarea.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		return m, nil
	case errors.Is(err, chat.ErrBusy):
		m.notice = "still waiting for the previous reply"
		return m, nil
	case err != nil:
		m.notice = err.Error()
		return m, nil
	}

	m.notice = ""
	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendMessage(ex), m.spinner.Tick)
}

// sendMessage creates a command that runs the exchange off the event loop
func (m Model) sendMessage(ex chat.Exchange) tea.Cmd {
	ctx, client, logger := m.ctx, m.client, m.logger
	return func() tea.Msg {
		return replyMsg{id: ex.ID, res: chat.Run(ctx, client, logger, ex)}
	}
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	reply, ok := m.session.LastReply()
	if !ok {
		m.notice = "nothing to copy yet"
		return m, nil
	}
	copyFn := m.copyFn
	return m, func() tea.Msg {
		return clipboardMsg{err: copyFn(reply.Content)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3 // Header panel with border
	inputHeight := 6  // Input panel with border and label
	statusHeight := 2 // Notice and status bar
	vpHeight := height - headerHeight - inputHeight - statusHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	m.contentWidth = contentWidth
	// messagesAreaStyle pads one column on each side
	m.viewport.Width = contentWidth - 2
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(contentWidth - 4)
	m.ready = true
	m.updateViewport()
}

// updateViewport refreshes the viewport content with the conversation bubbles
func (m *Model) updateViewport() {
	width := m.viewport.Width
	if width != m.renderedWidth {
		m.rendered = make(map[int]string)
		m.renderedWidth = width
	}

	bubbles := chat.Bubbles(m.session.Messages(), m.session.Loading())
	blocks := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		blocks = append(blocks, m.renderBubble(b, width))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
}

// renderBubble draws one bubble aligned to its side of the viewport
func (m *Model) renderBubble(b chat.Bubble, width int) string {
	maxWidth := width * 3 / 4
	if maxWidth < 20 {
		maxWidth = width
	}

	if b.Variant == chat.VariantSent {
		content := b.Content
		w := lipgloss.Width(content) + 4
		if w > maxWidth {
			w = maxWidth
		}
		block := lipgloss.JoinVertical(lipgloss.Right,
			sentAvatarStyle.Render(b.Avatar),
			sentBubbleStyle.Width(w-2).Render(content),
		)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	var content string
	if b.Loading {
		content = m.spinner.View() + " " + loadingStyle.Render("thinking")
	} else {
		content = m.renderMarkdown(b, maxWidth-4)
	}
	block := lipgloss.JoinVertical(lipgloss.Left,
		receivedAvatarStyle.Render(b.Avatar),
		receivedBubbleStyle.Render(content),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, block)
}

func (m *Model) renderMarkdown(b chat.Bubble, width int) string {
	if out, ok := m.rendered[b.Index]; ok {
		return out
	}
	out := render.Reply(b.Content, m.renderOpts.WithWidth(width))
	m.rendered[b.Index] = out
	return out
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.contentWidth
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("CVIS Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.GetModel()),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	var messages string
	if m.session.Len() == 0 && !m.session.Loading() {
		messages = m.renderWelcome()
	} else {
		messages = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	input := lipgloss.JoinVertical(lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.textarea.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	if err := m.session.LastError(); err != nil {
		sections = append(sections, FormatError(err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render("Welcome to CVIS Chat"),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
	)

	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

func (m Model) renderStatusBar(width int) string {
	items := make([]string, 0, 4)
	for _, b := range m.keys.shortcuts() {
		h := b.Help()
		items = append(items, statusKeyStyle.Render(h.Key)+statusDescStyle.Render(" "+h.Desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI and closes the session when it exits
func RunChat(ctx context.Context, client api.GenerateClientInterface, session *chat.Session, logger zerolog.Logger, opts render.Options) error {
	defer session.Close()

	m := NewChatModel(ctx, client, session, logger, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
