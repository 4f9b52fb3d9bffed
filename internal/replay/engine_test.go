package replay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/ftreplay/internal/handhistory"
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

func parseSample(t *testing.T) *handhistory.Hand {
	t.Helper()
	result, err := handhistory.Parse(strings.NewReader(sampleHand))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)
	return result.Hands[0]
}

func TestReconstructPreflopArithmetic(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// After "Bob calls 40": blinds 10+20, raise-to 60 (delta 50), call 40.
	state := Reconstruct(hand, Cursor{Street: handhistory.Preflop, Index: 3})

	assert.Equal(t, 120, state.Pot)
	assert.Equal(t, 60, state.Contributions["Alice"])
	assert.Equal(t, 60, state.Contributions["Bob"])
	assert.Equal(t, 1440, state.Stacks["Alice"])
	assert.Equal(t, 1480, state.Stacks["Bob"])
	assert.Empty(t, state.Board)
	assert.Empty(t, state.Folded)
}

func TestReconstructSeedsFromSeatLines(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	state := Reconstruct(hand, Start(hand))
	assert.Equal(t, 1485, state.Stacks["Carol"])
	assert.True(t, state.SittingOut["Carol"], "seat-line sitting-out seeds the set")
	assert.Equal(t, []string{"Qs", "Qc"}, state.HoleCards["Alice"], "hero cards visible from the start")
	assert.NotContains(t, state.HoleCards, "Bob")
}

func TestBoardVisibilityGatedOnBoardAction(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// Last preflop action: board still hidden.
	end := Reconstruct(hand, Cursor{Street: handhistory.Preflop, Index: 3})
	assert.Empty(t, end.Board)

	// The flop's synthetic board action is index 0 of the flop street.
	flop := Reconstruct(hand, Cursor{Street: handhistory.Flop, Index: 0})
	assert.Equal(t, []string{"Ah", "Kd", "7h"}, flop.Board)
}

func TestStreetContributionResets(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// On the flop board reveal, preflop contributions are gone but the pot
	// and stacks carry over.
	state := Reconstruct(hand, Cursor{Street: handhistory.Flop, Index: 0})
	assert.Equal(t, 120, state.Pot)
	assert.Equal(t, 0, state.Contributions["Alice"])
	assert.Equal(t, 1440, state.Stacks["Alice"])
}

func TestUncalledBetAndPayout(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// After Alice's flop bet: pot grew, stack shrank.
	afterBet := Reconstruct(hand, Cursor{Street: handhistory.Flop, Index: 2})
	assert.Equal(t, 200, afterBet.Pot)
	assert.Equal(t, 80, afterBet.Contributions["Alice"])
	assert.Equal(t, 1360, afterBet.Stacks["Alice"])

	// After the uncalled return: bet reversed out of pot and contribution.
	afterReturn := Reconstruct(hand, Cursor{Street: handhistory.Flop, Index: 4})
	assert.Equal(t, 120, afterReturn.Pot)
	assert.Equal(t, 0, afterReturn.Contributions["Alice"])
	assert.Equal(t, 1440, afterReturn.Stacks["Alice"])
	assert.True(t, afterReturn.Folded["Bob"])

	// After the payout: stack grows, pot figure stays wagered-amount.
	final := Reconstruct(hand, End(hand))
	assert.Equal(t, 120, final.Pot)
	assert.Equal(t, 1560, final.Stacks["Alice"])
	assert.Equal(t, 120, final.Winnings["Alice"])
}

func TestMuckRevealedFromSummary(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	final := Reconstruct(hand, End(hand))
	assert.Equal(t, []string{"Qs", "Qc"}, final.HoleCards["Alice"])
}

func TestBackwardNavigationIdempotent(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// Reconstructing at c1 after visiting c2 > c1 must equal reconstructing
	// at c1 directly; there is no hidden forward-only state.
	c1 := Cursor{Street: handhistory.Preflop, Index: 2}
	c2 := Cursor{Street: handhistory.Flop, Index: 4}

	direct := Reconstruct(hand, c1)
	_ = Reconstruct(hand, c2)
	again := Reconstruct(hand, c1)

	assert.Equal(t, direct, again)
}

func TestBoardMonotonicAndFoldPermanent(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	var prevBoard []string
	bobFolded := false

	cursor := Start(hand)
	for {
		state := Reconstruct(hand, cursor)

		require.True(t, len(state.Board) >= len(prevBoard), "board shrank at %+v", cursor)
		if len(prevBoard) > 0 {
			assert.Equal(t, prevBoard, state.Board[:len(prevBoard)], "board prefix changed at %+v", cursor)
		}
		prevBoard = state.Board

		if bobFolded {
			assert.True(t, state.Folded["Bob"], "fold must be permanent at %+v", cursor)
		}
		bobFolded = bobFolded || state.Folded["Bob"]

		next, ok := Next(hand, cursor)
		if !ok {
			break
		}
		cursor = next
	}
}

func TestPotConservationOverPrefixes(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// At every prefix cursor the pot equals the sum of all forced bets,
	// wagers and raise deltas minus uncalled returns seen so far.
	cursor := Start(hand)
	for {
		state := Reconstruct(hand, cursor)

		wagered := 0
		for name, stack := range state.Stacks {
			start, ok := hand.PlayerByName(name)
			require.True(t, ok)
			wagered += start.Chips - stack + state.Winnings[name]
		}
		assert.Equal(t, wagered, state.Pot, "pot conservation failed at %+v", cursor)

		next, ok := Next(hand, cursor)
		if !ok {
			break
		}
		cursor = next
	}
}

func TestCursorClamping(t *testing.T) {
	t.Parallel()
	hand := parseSample(t)

	// Wildly out-of-range cursors clamp instead of erroring.
	over := Reconstruct(hand, Cursor{Street: handhistory.River, Index: 99})
	assert.Equal(t, Reconstruct(hand, End(hand)), over)

	under := Reconstruct(hand, Cursor{Street: handhistory.Preflop, Index: -7})
	assert.Equal(t, Reconstruct(hand, Start(hand)), under)
}

func TestAmountDefaultsCounted(t *testing.T) {
	t.Parallel()

	mangled := strings.Replace(sampleHand, "Bob calls 40", "Bob calls", 1)
	result, err := handhistory.Parse(strings.NewReader(mangled))
	require.NoError(t, err)

	state := Reconstruct(result.Hands[0], End(result.Hands[0]))
	assert.Equal(t, 1, state.AmountDefaults)
}
