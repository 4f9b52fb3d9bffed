package replay

import (
	"strings"

	"github.com/lox/ftreplay/internal/handhistory"
)

// Reconstruct derives the table state at the given cursor by replaying the
// hand's action log from the start: all actions of streets before the
// cursor's, then actions [0..Index] of the cursor's street. The hand is
// only read, never mutated, and the returned snapshot shares no state with
// other calls, so concurrent reconstruction of different cursors is safe.
func Reconstruct(h *handhistory.Hand, c Cursor) DerivedState {
	c = Clamp(h, c)
	state := newDerivedState()

	// Seat lines seed stacks and the initial sitting-out set.
	for _, p := range h.Players {
		state.Stacks[p.Name] = p.Chips
		state.Contributions[p.Name] = 0
		if p.SittingOut {
			state.SittingOut[p.Name] = true
		}
	}

	// Hero's own cards are visible from the start if known.
	if h.Hero != "" && h.HoleCards != "" {
		state.HoleCards[h.Hero] = handhistory.BracketCards("[" + h.HoleCards + "]")
	}

	for _, street := range handhistory.Streets() {
		if street > c.Street {
			break
		}

		// Raise-to semantics are street-local: contributions reset here,
		// while antes, stacks and winnings accumulate across the hand.
		for name := range state.Contributions {
			state.Contributions[name] = 0
		}

		actions := h.Actions[street]
		limit := len(actions)
		if street == c.Street {
			limit = c.Index + 1
		}

		for i := 0; i < limit; i++ {
			applyAction(h, actions[i], &state)
		}
	}

	return state
}

func applyAction(h *handhistory.Hand, a handhistory.Action, state *DerivedState) {
	kind := Classify(a)

	switch kind {
	case KindBoard:
		state.Board = append(state.Board, handhistory.BracketCards(a.Detail)...)
		return

	case KindFold:
		state.Folded[a.Player] = true
		return

	case KindSitOut:
		state.SittingOut[a.Player] = true
		return

	case KindReturn:
		delete(state.SittingOut, a.Player)
		return

	case KindShow:
		if cards := handhistory.BracketCards(a.Detail); len(cards) > 0 {
			state.HoleCards[a.Player] = cards
		}
		return

	case KindMuck:
		// A mucked hand is hidden at the table, but the summary section
		// often echoes it; reveal from there when available.
		if cards := summaryMuckedCards(h, a.Player); len(cards) > 0 {
			state.HoleCards[a.Player] = cards
		}
		return

	case KindCheck, KindPassthrough:
		return
	}

	// Money movement. Uncalled returns credit the stated recipient, not
	// necessarily the action's subject line.
	player := a.Player
	if kind == KindUncalled {
		player = UncalledRecipient(a)
	}

	effect := Apply(a, state.Contributions[player])
	if effect.AmountMissing {
		state.AmountDefaults++
	}

	state.Pot += effect.PotDelta
	state.Contributions[player] = effect.NewContribution
	state.Stacks[player] += effect.StackDelta

	switch kind {
	case KindAnte:
		state.Antes[player] += effect.PotDelta
	case KindPayout:
		if amount, ok := PayoutAmount(a); ok {
			state.Winnings[player] += amount
		}
	}
}

// summaryMuckedCards finds "<name> ... mucked [..]" in the hand's summary
// section and returns the bracketed cards.
func summaryMuckedCards(h *handhistory.Hand, name string) []string {
	for _, value := range h.Summary {
		if !strings.Contains(value, name) || !strings.Contains(value, "mucked [") {
			continue
		}
		idx := strings.Index(value, "mucked [")
		if cards := handhistory.BracketCards(value[idx:]); len(cards) > 0 {
			return cards
		}
	}
	return nil
}
