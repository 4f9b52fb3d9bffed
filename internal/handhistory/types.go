// Package handhistory parses Full Tilt Poker hand-history text files into
// structured hands. The parser is line oriented: a classifier tags each line,
// a segmenter groups lines into hands at header boundaries, and a small state
// machine builds one Hand per group.
package handhistory

// Street is one of the four betting rounds of a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// Streets lists the betting rounds in replay order.
func Streets() []Street {
	return []Street{Preflop, Flop, Turn, River}
}

// String returns the lowercase street name as used in hand-history text.
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// BoardPlayer is the sentinel player name used for synthetic board-reveal
// actions, so the replay engine has an orderable event for each street's
// community cards.
const BoardPlayer = "Board"

// VerbBoard is the verb carried by synthetic board-reveal actions.
const VerbBoard = "board"

// Player is one seat occupant for a single hand.
type Player struct {
	Seat       int    // 1-based, unique within a hand
	Name       string // join key for all per-player state
	Chips      int    // starting stack as printed in the seat line
	SittingOut bool   // initial flag from the seat line
}

// Action is one parsed event line. Player is the acting player's name, or
// BoardPlayer for synthetic board reveals. Verb is one of the recognized
// action verbs, or an unrecognized verb kept as a passthrough. Detail is the
// remaining free text, which may embed a chip amount, a "raises to" target,
// bracketed cards, or a "returned to <name>" clause.
type Action struct {
	Player string
	Verb   string
	Detail string
}

// Hand is one played hand, built once by the parser and immutable thereafter.
type Hand struct {
	Header     string // raw header line, kept for session metadata extraction
	SourceLine int    // 1-based line number of the header in the source file
	ButtonSeat int    // 0 when no button line was seen
	Players    []Player
	Actions    map[Street][]Action
	Board      map[Street][]string
	Summary    map[string]string
	Hero       string // empty when no hero reveal was seen
	HoleCards  string // hero's two-card string, e.g. "Ah Kd"
}

// PlayerByName returns the player with the given display name.
func (h *Hand) PlayerByName(name string) (Player, bool) {
	for _, p := range h.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerBySeat returns the player occupying the given seat.
func (h *Hand) PlayerBySeat(seat int) (Player, bool) {
	for _, p := range h.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return Player{}, false
}

// LastStreet returns the latest street that has at least one action.
// Hands that never got past the blinds report Preflop.
func (h *Hand) LastStreet() Street {
	last := Preflop
	for _, s := range Streets() {
		if len(h.Actions[s]) > 0 {
			last = s
		}
	}
	return last
}

func newHand(header string, sourceLine int) *Hand {
	return &Hand{
		Header:     header,
		SourceLine: sourceLine,
		Actions: map[Street][]Action{
			Preflop: nil,
			Flop:    nil,
			Turn:    nil,
			River:   nil,
		},
		Board:   map[Street][]string{},
		Summary: map[string]string{},
	}
}
