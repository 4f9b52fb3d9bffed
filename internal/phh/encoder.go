package phh

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

var reGameNumber = regexp.MustCompile(`#(\d+)`)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// FromHand converts a parsed Full Tilt hand into PHH form. Forced bets are
// lifted out of the action list into the antes/blinds arrays; table actions
// become the PHH vocabulary (f, cc, cbr N, sm, d db). Outcome notices like
// payouts and uncalled returns have no PHH action and are dropped.
func FromHand(h *handhistory.Hand) (*HandHistory, error) {
	if len(h.Players) == 0 {
		return nil, fmt.Errorf("phh: hand has no players")
	}

	out := &HandHistory{
		Variant: "NT", // no-limit Texas hold'em
		HandID:  handID(h),
		Antes:   make([]int, len(h.Players)),
		Metadata: map[string]any{
			"header": h.Header,
		},
	}
	if h.ButtonSeat > 0 {
		out.Metadata["button_seat"] = h.ButtonSeat
	}

	position := map[string]int{} // player name -> 0-based PHH position
	maxSeat := 0
	for i, p := range h.Players {
		position[p.Name] = i
		out.Players = append(out.Players, p.Name)
		out.Seats = append(out.Seats, p.Seat)
		out.StartingStacks = append(out.StartingStacks, p.Chips)
		if p.Seat > maxSeat {
			maxSeat = p.Seat
		}
	}
	out.SeatCount = maxSeat
	out.BlindsOrStraddles = make([]int, len(h.Players))

	if h.Hero != "" && h.HoleCards != "" {
		if pos, ok := position[h.Hero]; ok {
			out.Actions = append(out.Actions,
				fmt.Sprintf("d dh p%d %s", pos+1, cardRun(strings.Fields(h.HoleCards))))
		}
	}

	for _, street := range handhistory.Streets() {
		// Street contributions for cbr totals, reset like the replay engine.
		contributions := map[string]int{}

		for _, a := range h.Actions[street] {
			effect := replay.Apply(a, contributions[a.Player])
			kind := replay.Classify(a)

			switch kind {
			case replay.KindBoard:
				out.Actions = append(out.Actions,
					"d db "+cardRun(handhistory.BracketCards(a.Detail)))
				continue
			case replay.KindPost:
				if pos, ok := position[a.Player]; ok {
					out.BlindsOrStraddles[pos] += effect.PotDelta
				}
				contributions[a.Player] = effect.NewContribution
				continue
			case replay.KindAnte:
				if pos, ok := position[a.Player]; ok {
					out.Antes[pos] += effect.PotDelta
				}
				continue
			}

			pos, ok := position[a.Player]
			if !ok {
				continue
			}
			player := fmt.Sprintf("p%d", pos+1)

			switch kind {
			case replay.KindFold:
				out.Actions = append(out.Actions, player+" f")
			case replay.KindCheck:
				out.Actions = append(out.Actions, player+" cc")
			case replay.KindWager, replay.KindRaise:
				contributions[a.Player] = effect.NewContribution
				if a.Verb == "calls" {
					out.Actions = append(out.Actions, player+" cc")
				} else {
					out.Actions = append(out.Actions,
						fmt.Sprintf("%s cbr %d", player, effect.NewContribution))
				}
			case replay.KindShow:
				if cards := handhistory.BracketCards(a.Detail); len(cards) > 0 {
					out.Actions = append(out.Actions,
						fmt.Sprintf("%s sm %s", player, cardRun(cards)))
				}
			}
		}
	}

	return out, nil
}

// handID extracts the room's game number from the header, falling back to
// the source line when the header is irregular.
func handID(h *handhistory.Hand) string {
	if m := reGameNumber.FindStringSubmatch(h.Header); m != nil {
		return m[1]
	}
	return fmt.Sprintf("line-%d", h.SourceLine)
}

// cardRun joins card codes into the undelimited run PHH uses, e.g. "AhKd".
func cardRun(cards []string) string {
	return strings.Join(cards, "")
}
