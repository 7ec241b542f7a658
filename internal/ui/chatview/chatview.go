// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatview provides the conversation screen of the ultrachat TUI.
package chatview

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzizLive1/ultrachat-tui/internal/chat"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/components"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// EventMsg wraps a conversation event for the Bubble Tea loop.
type EventMsg chat.Event

// listenCmd waits for the next conversation event.
func listenCmd(c *chat.Controller) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-c.Events()
		if !ok {
			return nil
		}
		return EventMsg(event)
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the conversation screen state.
type Model struct {
	theme      *styles.Theme
	controller *chat.Controller
	user       *model.User

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	md       *components.MarkdownRenderer

	showTimestamps bool
	ready          bool
	width          int
	height         int
}

// New creates the conversation screen.
func New(theme *styles.Theme, controller *chat.Controller, user *model.User, showTimestamps bool) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = theme.Spinner

	return Model{
		theme:          theme,
		controller:     controller,
		user:           user,
		input:          input,
		spin:           spin,
		showTimestamps: showTimestamps,
	}
}

// SetTheme swaps the theme after a toggle and re-renders the transcript.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spin.Style = theme.Spinner
	if m.ready {
		m.md, _ = components.NewMarkdownRenderer(theme.Mode, m.viewport.Width)
		m.refresh()
	}
}

// SetUser updates the profile shown in the header.
func (m *Model) SetUser(user *model.User) {
	m.user = user
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenCmd(m.controller))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 4
		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.md, _ = components.NewMarkdownRenderer(m.theme.Mode, msg.Width-8)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case EventMsg:
		m.refresh()
		m.viewport.GotoBottom()

		cmds := []tea.Cmd{listenCmd(m.controller)}
		if msg.Kind == chat.EventUserMessage {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.controller.State() == chat.StateIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			// Rejected sends (empty input, reply in flight) are silent.
			if err := m.controller.Send(context.Background(), m.input.Value()); err == nil {
				m.input.Reset()
				m.refresh()
				m.viewport.GotoBottom()
				return m, m.spin.Tick
			}
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refresh re-renders the transcript into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	t := m.theme

	title := t.HeaderTitle.Render("Ultra Chat")
	who := ""
	if m.user != nil {
		who = t.HeaderUser.Render(m.user.FullName())
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(who) - 4
	if gap < 1 {
		gap = 1
	}
	bar := title + strings.Repeat(" ", gap) + who
	return t.Header.Width(m.width - 2).Render(bar)
}

func (m Model) renderMessages() string {
	msgs := m.controller.Messages()
	state := m.controller.State()
	if len(msgs) == 0 && state == chat.StateIdle {
		return m.theme.ThinkingText.Render("Say hello to start the conversation.")
	}

	var blocks []string
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}

	// The reply placeholder only appears once the stream produces output, so
	// the waiting indicator belongs to the Sending state itself.
	if state == chat.StateSending {
		blocks = append(blocks, m.theme.AssistantBubble.Render(
			m.spin.View()+" "+m.theme.ThinkingText.Render("Thinking...")))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg *model.Message) string {
	t := m.theme
	maxWidth := m.viewport.Width * 3 / 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	meta := ""
	if m.showTimestamps {
		meta = t.BubbleMeta.Render(formatClock(msg.Timestamp))
	}

	switch {
	case msg.Role == model.RoleUser:
		bubble := t.UserBubble.MaxWidth(maxWidth).Render(msg.Content)
		block := bubble
		if meta != "" {
			block = lipgloss.JoinVertical(lipgloss.Right, bubble, meta)
		}
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)

	case msg.Content == chat.ErrorReplyText:
		return t.ErrorBubble.MaxWidth(maxWidth).Render(msg.Content)

	case msg.Streaming:
		// Partial markdown breaks glamour, so in-flight text gets the
		// lighter fence-aware renderer (it handles unclosed fences).
		content := components.ParseCodeBlocks(t, msg.Content, maxWidth-4)
		content = components.ParseInlineCode(t, content)
		return t.AssistantBubble.MaxWidth(maxWidth).Render(content)

	default:
		rendered := m.md.Render(msg.Content)
		bubble := t.AssistantBubble.MaxWidth(maxWidth).Render(rendered)
		if meta == "" {
			return bubble
		}
		return lipgloss.JoinVertical(lipgloss.Left, bubble, meta)
	}
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	)
}

func (m Model) renderStatusBar() string {
	t := m.theme

	var state string
	switch m.controller.State() {
	case chat.StateSending:
		state = m.spin.View() + " " + t.ThinkingText.Render("sending")
	case chat.StateStreaming:
		state = m.spin.View() + " " + t.ThinkingText.Render("streaming")
	case chat.StateError:
		state = t.StatusError.Render("error")
	default:
		state = t.StatusState.Render("ready")
	}

	help := t.ShortcutKey.Render("ctrl+d") + t.ShortcutDesc.Render(" dashboard · ") +
		t.ShortcutKey.Render("ctrl+t") + t.ShortcutDesc.Render(" theme · ") +
		t.ShortcutKey.Render("ctrl+l") + t.ShortcutDesc.Render(" logout · ") +
		t.ShortcutKey.Render("ctrl+c") + t.ShortcutDesc.Render(" quit")

	gap := m.width - lipgloss.Width(state) - lipgloss.Width(help) - 2
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(m.width).Render(state + strings.Repeat(" ", gap) + help)
}

// formatClock renders a message timestamp as wall-clock time.
func formatClock(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("15:04")
}
