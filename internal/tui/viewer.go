// Package tui is a terminal viewer that steps through parsed hands one
// action at a time, rendering the reconstructed table at each cursor.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/ftreplay/internal/deck"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

// ViewerModel represents the Bubble Tea model for the replay viewer.
type ViewerModel struct {
	hands  []*handhistory.Hand
	logger *log.Logger

	handIdx int
	cursor  replay.Cursor
	state   replay.DerivedState

	logViewport viewport.Model

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewViewerModel creates a viewer over the given hands, positioned at the
// start of the first one. The hands slice must be non-empty.
func NewViewerModel(hands []*handhistory.Hand, logger *log.Logger) *ViewerModel {
	m := &ViewerModel{
		hands:       hands,
		logger:      logger.WithPrefix("viewer"),
		logViewport: viewport.New(10, 5),
	}
	m.jumpTo(0)
	return m
}

// Run starts the viewer and blocks until the user quits.
func Run(hands []*handhistory.Hand, logger *log.Logger) error {
	if len(hands) == 0 {
		return fmt.Errorf("no hands to view")
	}
	p := tea.NewProgram(NewViewerModel(hands, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the viewer model.
func (m *ViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages in the viewer.
func (m *ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		m.logViewport.Height = maxInt(msg.Height-16, 3)
		m.initialized = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "right", "l", " ":
			if c, ok := replay.Next(m.hand(), m.cursor); ok {
				m.cursor = c
				m.refresh()
			}
		case "left", "h":
			if c, ok := replay.Prev(m.hand(), m.cursor); ok {
				m.cursor = c
				m.refresh()
			}
		case "home", "g":
			m.cursor = replay.Start(m.hand())
			m.refresh()
		case "end", "G":
			m.cursor = replay.End(m.hand())
			m.refresh()
		case "n", "pgdown":
			if m.handIdx+1 < len(m.hands) {
				m.jumpTo(m.handIdx + 1)
			}
		case "p", "pgup":
			if m.handIdx > 0 {
				m.jumpTo(m.handIdx - 1)
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m *ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.initialized {
		return "Loading..."
	}

	var b strings.Builder

	h := m.hand()
	title := fmt.Sprintf(" Hand %d/%d  %s ", m.handIdx+1, len(m.hands), h.Header)
	b.WriteString(HeaderStyle.Render(truncate(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(StreetStyle.Render(m.cursor.Street.String()))
	b.WriteString("  ")
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot: %d", m.state.Pot)))
	if len(m.state.Board) > 0 {
		b.WriteString("  Board: ")
		b.WriteString(renderCards(m.state.Board))
	}
	if m.state.AmountDefaults > 0 {
		b.WriteString("  ")
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%d amount(s) unreadable", m.state.AmountDefaults)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderPlayers())
	b.WriteString("\n")
	b.WriteString(m.logViewport.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("←/→ step  g/G start/end  n/p hand  q quit"))
	return b.String()
}

func (m *ViewerModel) hand() *handhistory.Hand {
	return m.hands[m.handIdx]
}

func (m *ViewerModel) jumpTo(idx int) {
	m.handIdx = idx
	m.cursor = replay.Start(m.hand())
	m.refresh()
}

// refresh recomputes the table snapshot and the action log for the current
// cursor. Backward navigation is just a refresh at an earlier cursor.
func (m *ViewerModel) refresh() {
	m.state = replay.Reconstruct(m.hand(), m.cursor)
	m.logViewport.SetContent(m.renderActionLog())
	m.logViewport.GotoBottom()
	m.logger.Debug("cursor moved",
		"hand", m.handIdx, "street", m.cursor.Street.String(), "index", m.cursor.Index)
}

func (m *ViewerModel) renderPlayers() string {
	h := m.hand()
	rows := make([]string, 0, len(h.Players))
	for _, p := range h.Players {
		line := fmt.Sprintf("Seat %d: %-20s %6d", p.Seat, p.Name, m.state.Stacks[p.Name])
		if c := m.state.Contributions[p.Name]; c > 0 {
			line += fmt.Sprintf("  in: %d", c)
		}
		if w := m.state.Winnings[p.Name]; w > 0 {
			line += WinnerStyle.Render(fmt.Sprintf("  won: %d", w))
		}
		if cards := m.state.HoleCards[p.Name]; len(cards) > 0 {
			line += "  " + renderCards(cards)
		}
		if p.Seat == h.ButtonSeat {
			line += "  (button)"
		}

		switch {
		case m.state.Folded[p.Name]:
			rows = append(rows, FoldedStyle.Render(line))
		case m.state.SittingOut[p.Name]:
			rows = append(rows, SittingOutStyle.Render(line+"  sitting out"))
		default:
			rows = append(rows, PlayerStyle.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderActionLog lists every action up to the cursor, with the current one
// highlighted. Streets are shown in order with their markers.
func (m *ViewerModel) renderActionLog() string {
	h := m.hand()
	var lines []string
	for _, street := range handhistory.Streets() {
		actions := h.Actions[street]
		if len(actions) == 0 {
			continue
		}
		if street <= m.cursor.Street {
			lines = append(lines, StreetStyle.Render("--- "+street.String()+" ---"))
		}
		for i, a := range actions {
			c := replay.Cursor{Street: street, Index: i}
			if m.cursor.Before(c) {
				continue
			}
			text := formatAction(a)
			if c == m.cursor {
				lines = append(lines, CurrentActionStyle.Render("> "+text))
			} else {
				lines = append(lines, ActionStyle.Render("  "+text))
			}
		}
	}
	if len(lines) == 0 {
		lines = append(lines, HelpStyle.Render("(no actions)"))
	}
	return strings.Join(lines, "\n")
}

func formatAction(a handhistory.Action) string {
	switch a.Verb {
	case handhistory.VerbBoard:
		return strings.TrimSpace(a.Detail)
	case "uncalled":
		return strings.TrimSpace("Uncalled bet " + strings.TrimSpace(a.Detail))
	default:
		return strings.TrimSpace(strings.Join([]string{a.Player, a.Verb, a.Detail}, " "))
	}
}

// renderCards colors card codes by suit.
func renderCards(cards []string) string {
	out := make([]string, 0, len(cards))
	for _, code := range cards {
		card, err := deck.ParseCard(code)
		if err != nil {
			out = append(out, code)
			continue
		}
		if card.IsRed() {
			out = append(out, RedCardStyle.Render(card.String()))
		} else {
			out = append(out, BlackCardStyle.Render(card.String()))
		}
	}
	return strings.Join(out, " ")
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[:width]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
