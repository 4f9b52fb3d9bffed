package handhistory

import (
	"fmt"
	"strings"
)

// builder is the per-hand parser state machine. The current street only
// moves forward; the summary and awaiting-hole-cards flags are orthogonal
// to it.
type builder struct {
	hand         *Hand
	street       Street
	inSummary    bool
	awaitingHole bool
	heroCaptured bool
	seatsSeen    map[int]bool
}

// buildHand consumes one hand's line group and produces a Hand. The group's
// first line is the header; every later line is classified and fed through
// the state machine.
func buildHand(group handGroup) (*Hand, error) {
	if len(group.lines) == 0 {
		return nil, fmt.Errorf("empty hand group")
	}

	b := &builder{
		hand:      newHand(group.lines[0], group.startLine),
		street:    Preflop,
		seatsSeen: map[int]bool{},
	}

	for _, raw := range group.lines[1:] {
		if err := b.consume(raw); err != nil {
			return nil, err
		}
	}
	return b.hand, nil
}

func (b *builder) consume(raw string) error {
	line := Classify(raw)

	// Markers are honored even inside the summary section; everything else
	// in the summary is a key/value row.
	switch line.Kind {
	case LineStreetMarker:
		return b.enterStreet(line)
	case LineSummaryMarker:
		b.inSummary = true
		return nil
	case LineHoleCardsMarker:
		b.awaitingHole = true
		return nil
	case LineButtonSeat:
		b.hand.ButtonSeat = line.Seat
		return nil
	}

	if b.inSummary {
		if key, value, ok := SummaryPair(raw); ok {
			b.hand.Summary[key] = value
		}
		return nil
	}

	switch line.Kind {
	case LineDealtTo:
		if b.awaitingHole && !b.heroCaptured {
			b.hand.Hero = line.Name
			b.hand.HoleCards = line.HoleCards
			b.heroCaptured = true
			b.awaitingHole = false
		}
		return nil

	case LineSeat:
		if b.seatsSeen[line.Seat] {
			return fmt.Errorf("duplicate seat %d (%s)", line.Seat, line.Name)
		}
		b.seatsSeen[line.Seat] = true
		b.hand.Players = append(b.hand.Players, Player{
			Seat:       line.Seat,
			Name:       line.Name,
			Chips:      line.Chips,
			SittingOut: line.SittingOut,
		})
		return nil

	case LineAction:
		b.hand.Actions[b.street] = append(b.hand.Actions[b.street], Action{
			Player: line.Player,
			Verb:   line.Verb,
			Detail: line.Detail,
		})
		return nil
	}

	// Informational room chatter; dropped without complaint.
	return nil
}

// enterStreet advances the state machine to a flop/turn/river street and
// records the newly revealed cards, both on the hand's board and as a
// synthetic action so the replay engine can step onto the reveal.
func (b *builder) enterStreet(line Line) error {
	if line.Street < b.street {
		return fmt.Errorf("street marker %s after %s", line.Street, b.street)
	}
	b.street = line.Street

	if len(line.Cards) == 0 {
		return nil
	}
	b.hand.Board[line.Street] = line.Cards
	b.hand.Actions[line.Street] = append(b.hand.Actions[line.Street], Action{
		Player: BoardPlayer,
		Verb:   VerbBoard,
		Detail: fmt.Sprintf("%s [%s]", line.Street, strings.Join(line.Cards, " ")),
	})
	return nil
}
