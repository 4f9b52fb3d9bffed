package phh

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/ftreplay/internal/handhistory"
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

func convertSample(t *testing.T) *HandHistory {
	t.Helper()
	result, err := handhistory.Parse(strings.NewReader(sampleHand))
	require.NoError(t, err)
	require.Len(t, result.Hands, 1)

	hand, err := FromHand(result.Hands[0])
	require.NoError(t, err)
	return hand
}

func TestFromHand(t *testing.T) {
	t.Parallel()

	hand := convertSample(t)

	assert.Equal(t, "NT", hand.Variant)
	assert.Equal(t, "12345678901", hand.HandID)
	assert.Equal(t, []string{"Alice", "Bob"}, hand.Players)
	assert.Equal(t, []int{1, 2}, hand.Seats)
	assert.Equal(t, []int{1500, 1500}, hand.StartingStacks)
	assert.Equal(t, []int{10, 20}, hand.BlindsOrStraddles)
	assert.Equal(t, []int{0, 0}, hand.Antes)
	assert.Equal(t, 2, hand.Metadata["button_seat"])

	// Blind posts are lifted into blinds_or_straddles, payouts and the
	// uncalled return have no PHH action.
	assert.Equal(t, []string{
		"d dh p1 QsQc",
		"p1 cbr 60",
		"p2 cc",
		"d db AhKd7h",
		"p2 cc",
		"p1 cbr 80",
		"p2 f",
	}, hand.Actions)
}

func TestEncodeRoundTrips(t *testing.T) {
	t.Parallel()

	data, err := EncodeToBytes(convertSample(t))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `variant = "NT"`)
	assert.Contains(t, text, `hand = "12345678901"`)
	assert.Contains(t, text, "p1 cbr 60")

	var decoded HandHistory
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, []int{10, 20}, decoded.BlindsOrStraddles)
}

func TestFromHandNoPlayers(t *testing.T) {
	t.Parallel()

	_, err := FromHand(&handhistory.Hand{})
	assert.Error(t, err)
}
