package replay

// DerivedState is the reconstructed table snapshot at a cursor. It is a
// value object built fresh on every Reconstruct call and never mutated in
// place; all maps are keyed by player name.
type DerivedState struct {
	// Pot is the amount wagered into the middle so far. It is distinct from
	// the amounts paid out through Winnings; the viewer needs both.
	Pot int

	// Contributions holds each player's non-ante contribution for the
	// cursor's street only; it resets at every street boundary.
	Contributions map[string]int

	// Antes accumulates forced antes across the whole hand.
	Antes map[string]int

	// Stacks holds each player's remaining chips, seeded from the seat
	// lines and adjusted by every money action up to the cursor, including
	// payouts.
	Stacks map[string]int

	// Winnings accumulates wins/collected amounts per player for display.
	Winnings map[string]int

	// Folded holds players who have folded at or before the cursor.
	Folded map[string]bool

	// SittingOut holds players currently sitting out, seeded from the seat
	// lines and updated by sit-out/return actions.
	SittingOut map[string]bool

	// Board lists the visible community cards in reveal order. Cards appear
	// only once their street's synthetic board action has been reached.
	Board []string

	// HoleCards maps players to their visible hole cards: the hero's from
	// the start, others once their shows action (or a summary muck reveal)
	// has been reached.
	HoleCards map[string][]string

	// AmountDefaults counts money actions whose detail carried no parseable
	// amount and were applied as zero. Non-zero values flag irregular input
	// worth logging.
	AmountDefaults int
}

// clone-free by construction: Reconstruct builds each snapshot from scratch.
func newDerivedState() DerivedState {
	return DerivedState{
		Contributions: map[string]int{},
		Antes:         map[string]int{},
		Stacks:        map[string]int{},
		Winnings:      map[string]int{},
		Folded:        map[string]bool{},
		SittingOut:    map[string]bool{},
		HoleCards:     map[string][]string{},
	}
}
