package handhistory

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind tags the result of classifying one raw line.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineHandHeader
	LineButtonSeat
	LineStreetMarker
	LineSummaryMarker
	LineHoleCardsMarker
	LineDealtTo
	LineSeat
	LineAction
)

// HeaderPrefix opens every hand in a Full Tilt history file.
const HeaderPrefix = "Full Tilt Poker Game #"

var (
	reButton  = regexp.MustCompile(`(?i)The button is in seat #(\d+)`)
	reSeat    = regexp.MustCompile(`^Seat\s+(\d+):\s+(.+?)\s+\(([\d,]+)\)`)
	reDealtTo = regexp.MustCompile(`^Dealt to\s+(.+?)\s+\[(.+?)\]`)
	reAction  = regexp.MustCompile(`^(.+?) (bets|calls|raises|checks|folds|shows|collected|posts|antes|mucks|wins|is sitting out|has returned)(.*)`)

	// "Uncalled bet of 40 returned to Alice" — the only money line whose
	// subject is not the acting player.
	reUncalled = regexp.MustCompile(`^Uncalled bet of\s+([\d,]+)\s+returned to\s+(.+)$`)

	reBracketGroup = regexp.MustCompile(`\[([^\]]+)\]`)
)

const (
	markerHoleCards = "*** HOLE CARDS ***"
	markerFlop      = "*** FLOP ***"
	markerTurn      = "*** TURN ***"
	markerRiver     = "*** RIVER ***"
	markerSummary   = "*** SUMMARY ***"
)

// Line is the tagged result of classifying one raw text line. Only the
// fields relevant to the Kind are populated.
type Line struct {
	Kind LineKind
	Raw  string

	// LineStreetMarker
	Street Street
	Cards  []string // cards newly revealed by a flop/turn/river marker

	// LineButtonSeat / LineSeat
	Seat       int
	Name       string
	Chips      int
	SittingOut bool

	// LineDealtTo
	HoleCards string

	// LineAction
	Player string
	Verb   string
	Detail string
}

// Classify tags a single line. It holds no state beyond the line itself;
// summary-section reinterpretation of "key: value" rows is the builder's job
// since it depends on where the line sits in the hand.
func Classify(raw string) Line {
	line := Line{Kind: LineUnrecognized, Raw: raw}

	if strings.HasPrefix(raw, HeaderPrefix) {
		line.Kind = LineHandHeader
		return line
	}

	if m := reButton.FindStringSubmatch(raw); m != nil {
		line.Kind = LineButtonSeat
		line.Seat, _ = strconv.Atoi(m[1])
		return line
	}

	switch {
	case strings.HasPrefix(raw, markerHoleCards):
		line.Kind = LineHoleCardsMarker
		return line
	case strings.HasPrefix(raw, markerSummary):
		line.Kind = LineSummaryMarker
		return line
	case strings.HasPrefix(raw, markerFlop):
		line.Kind = LineStreetMarker
		line.Street = Flop
		line.Cards = firstBracketCards(raw)
		return line
	case strings.HasPrefix(raw, markerTurn):
		line.Kind = LineStreetMarker
		line.Street = Turn
		line.Cards = lastBracketCards(raw)
		return line
	case strings.HasPrefix(raw, markerRiver):
		line.Kind = LineStreetMarker
		line.Street = River
		line.Cards = lastBracketCards(raw)
		return line
	}

	if strings.HasPrefix(raw, "Seat ") {
		if m := reSeat.FindStringSubmatch(raw); m != nil {
			line.Kind = LineSeat
			line.Seat, _ = strconv.Atoi(m[1])
			line.Name = strings.TrimSpace(m[2])
			line.Chips = parseChips(m[3])
			line.SittingOut = strings.Contains(strings.ToLower(raw), "is sitting out")
			return line
		}
	}

	if m := reDealtTo.FindStringSubmatch(raw); m != nil {
		line.Kind = LineDealtTo
		line.Name = strings.TrimSpace(m[1])
		line.HoleCards = strings.TrimSpace(m[2])
		return line
	}

	if m := reUncalled.FindStringSubmatch(raw); m != nil {
		line.Kind = LineAction
		line.Player = strings.TrimSpace(m[2])
		line.Verb = "uncalled"
		line.Detail = strings.TrimSpace(raw[len("Uncalled bet"):])
		return line
	}

	if m := reAction.FindStringSubmatch(raw); m != nil {
		line.Kind = LineAction
		line.Player = strings.TrimSpace(m[1])
		line.Verb = m[2]
		line.Detail = strings.TrimSpace(m[3])
		return line
	}

	return line
}

// SummaryPair splits a "key: value" summary row. Returns ok=false for rows
// without a colon, which are dropped from the summary.
func SummaryPair(raw string) (key, value string, ok bool) {
	idx := strings.Index(raw, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:]), true
}

// firstBracketCards extracts the first bracketed card group on the line.
// Used for flop markers, which carry a single group.
func firstBracketCards(raw string) []string {
	m := reBracketGroup.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	return strings.Fields(m[1])
}

// lastBracketCards extracts the last bracketed group. Turn and river markers
// echo the running board before the newly dealt card, e.g.
// "*** TURN *** [Ah Kd 7h] [Qc]".
func lastBracketCards(raw string) []string {
	all := reBracketGroup.FindAllStringSubmatch(raw, -1)
	if len(all) == 0 {
		return nil
	}
	return strings.Fields(all[len(all)-1][1])
}

// BracketCards extracts the first bracketed card group from free text, such
// as the detail of a "shows [Ah Kd]" action.
func BracketCards(text string) []string {
	return firstBracketCards(text)
}

func parseChips(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}
