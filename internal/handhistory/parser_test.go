package handhistory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHand = `Full Tilt Poker Game #12345678901: $10 + $1 Sit & Go (90123456), Table 5 - 15/30 - No Limit Hold'em - 19:05:11 ET - 2009/07/14
Seat 1: Alice (1,500)
Seat 2: Bob (1,500)
Seat 3: Carol (1,485), is sitting out
The button is in seat #3
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
Alice mucks
Alice wins the pot (120)
*** SUMMARY ***
Total pot 120 | Rake 0
Board: [Ah Kd 7h]
Seat 1: Alice collected (120), mucked [Qs Qc]
Seat 2: Bob folded on the Flop
Seat 3: Carol didn't bet (folded)
`

func TestParseSingleHand(t *testing.T) {
	t.Parallel()

	result, err := Parse(strings.NewReader(sampleHand))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)
	require.Empty(t, result.Diagnostics)

	hand := result.Hands[0]
	assert.True(t, strings.HasPrefix(hand.Header, HeaderPrefix))
	assert.Equal(t, 1, hand.SourceLine)
	assert.Equal(t, 3, hand.ButtonSeat)

	require.Len(t, hand.Players, 3)
	assert.Equal(t, Player{Seat: 1, Name: "Alice", Chips: 1500}, hand.Players[0])
	assert.Equal(t, Player{Seat: 2, Name: "Bob", Chips: 1500}, hand.Players[1])
	assert.Equal(t, Player{Seat: 3, Name: "Carol", Chips: 1485, SittingOut: true}, hand.Players[2])

	assert.Equal(t, "Alice", hand.Hero)
	assert.Equal(t, "Qs Qc", hand.HoleCards)
	assert.Equal(t, []string{"Ah", "Kd", "7h"}, hand.Board[Flop])

	// Preflop: two posts, raise, call. Flop: synthetic board reveal first,
	// then check, bet, fold, uncalled return, muck, payout.
	require.Len(t, hand.Actions[Preflop], 4)
	flopActions := hand.Actions[Flop]
	require.Len(t, flopActions, 7)
	assert.Equal(t, Action{Player: BoardPlayer, Verb: VerbBoard, Detail: "flop [Ah Kd 7h]"}, flopActions[0])
	assert.Equal(t, "uncalled", flopActions[4].Verb)
	assert.Empty(t, hand.Actions[Turn])
	assert.Empty(t, hand.Actions[River])

	assert.Equal(t, "[Ah Kd 7h]", hand.Summary["Board"])
	assert.Equal(t, "Alice collected (120), mucked [Qs Qc]", hand.Summary["Seat 1"])
	assert.NotContains(t, hand.Summary, "Total pot 120 | Rake 0")
}

func TestParseMultipleHands(t *testing.T) {
	t.Parallel()

	second := strings.Replace(sampleHand, "#12345678901", "#12345678902", 1)
	result, err := Parse(strings.NewReader(sampleHand + "\n\n" + second))
	require.NoError(t, err)
	require.Len(t, result.Hands, 2)

	assert.Equal(t, 1, result.Hands[0].SourceLine)
	assert.Greater(t, result.Hands[1].SourceLine, result.Hands[0].SourceLine)
	assert.Contains(t, result.Hands[1].Header, "#12345678902")
}

func TestParseSkipsBadHandWithDiagnostic(t *testing.T) {
	t.Parallel()

	// Duplicate seat number violates the seat-uniqueness invariant; the
	// hand is skipped, the rest of the file still parses.
	bad := "Full Tilt Poker Game #99: Table 1 - No Limit Hold'em\n" +
		"Seat 1: Alice (1,500)\n" +
		"Seat 1: Bob (1,500)\n"

	result, err := Parse(strings.NewReader(bad + sampleHand))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)
	require.Len(t, result.Diagnostics, 1)

	diag := result.Diagnostics[0]
	assert.Equal(t, 1, diag.Line)
	assert.Contains(t, diag.Header, "Full Tilt Poker Game #99")
	assert.ErrorContains(t, diag, "duplicate seat 1")
}

func TestParseNoHeader(t *testing.T) {
	t.Parallel()

	result, err := Parse(strings.NewReader("just some room chatter\nand another line\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Hands)
	require.Len(t, result.Diagnostics, 1)
	assert.ErrorContains(t, result.Diagnostics[0], "no hand header")
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	result, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Hands)
	assert.Empty(t, result.Diagnostics)
}

func TestHeroCapturedOnce(t *testing.T) {
	t.Parallel()

	doubled := strings.Replace(sampleHand,
		"Dealt to Alice [Qs Qc]",
		"Dealt to Alice [Qs Qc]\nDealt to Bob [2c 3d]", 1)
	result, err := Parse(strings.NewReader(doubled))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)

	assert.Equal(t, "Alice", result.Hands[0].Hero)
	assert.Equal(t, "Qs Qc", result.Hands[0].HoleCards)
}

func TestLastStreet(t *testing.T) {
	t.Parallel()

	result, err := Parse(strings.NewReader(sampleHand))
	require.NoError(t, err)
	assert.Equal(t, Flop, result.Hands[0].LastStreet())
}
