package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

const sampleHand = `Full Tilt Poker Game #12345678901: Table 5 - 15/30 - No Limit Hold'em
Seat 1: Alice (1,500)
Seat 2: Bob (1,500)
The button is in seat #2
Alice posts the small blind of 10
Bob posts the big blind of 20
*** HOLE CARDS ***
Dealt to Alice [Qs Qc]
Alice raises to 60
Bob calls 40
*** FLOP *** [Ah Kd 7h]
Bob checks
Alice bets 80
Bob folds
Uncalled bet of 80 returned to Alice
Alice wins the pot (120)
*** SUMMARY ***
Total pot 120 | Rake 0
`

func newTestViewer(t *testing.T) *ViewerModel {
	t.Helper()
	result, err := handhistory.Parse(strings.NewReader(sampleHand))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)

	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)

	m := NewViewerModel(result.Hands, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerStartsAtFirstAction(t *testing.T) {
	m := newTestViewer(t)

	assert.Equal(t, replay.Cursor{Street: handhistory.Preflop, Index: 0}, m.cursor)
	assert.Equal(t, 10, m.state.Pot, "first action is the small blind post")
}

func TestViewerStepsForwardAndBack(t *testing.T) {
	m := newTestViewer(t)

	m.Update(key("l"))
	assert.Equal(t, 30, m.state.Pot)

	m.Update(key("h"))
	assert.Equal(t, 10, m.state.Pot)

	// Backing up past the start stays put.
	m.Update(key("h"))
	assert.Equal(t, replay.Cursor{Street: handhistory.Preflop, Index: 0}, m.cursor)
}

func TestViewerJumpToEnd(t *testing.T) {
	m := newTestViewer(t)

	m.Update(key("G"))
	assert.Equal(t, handhistory.Flop, m.cursor.Street)
	assert.Equal(t, 120, m.state.Pot)
	assert.Equal(t, 120, m.state.Winnings["Alice"])

	m.Update(key("g"))
	assert.Equal(t, replay.Cursor{Street: handhistory.Preflop, Index: 0}, m.cursor)
}

func TestViewerViewRendersTable(t *testing.T) {
	m := newTestViewer(t)
	m.Update(key("G"))

	view := m.View()
	assert.Contains(t, view, "Pot: 120")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "flop")
	assert.Contains(t, view, "Hand 1/1")
}

func TestViewerQuit(t *testing.T) {
	m := newTestViewer(t)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.Empty(t, model.View())
}
