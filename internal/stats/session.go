// Package stats computes hero-centric session aggregates over parsed hands.
package stats

import (
	"fmt"
	"sort"

	"github.com/lox/ftreplay/internal/deck"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

// SessionStats summarizes one parsed session from the hero's point of view.
type SessionStats struct {
	Hands      int // total hands in the session
	HeroHands  int // hands where the hero was identified
	VPIPHands  int // hands where the hero voluntarily put chips in
	NetChips   int // hero's net result across the session
	BiggestPot int // largest pot wagered in any hand

	// PocketCounts tallies the hero's starting hands by canonical class,
	// e.g. "AKs", "QJo", "TT".
	PocketCounts map[string]int
}

// Collect folds a session's hands into aggregate statistics. Each hand is
// fully replayed through the reconstruction engine, so the numbers agree
// with what the viewer shows at the end of every hand.
func Collect(hands []*handhistory.Hand) SessionStats {
	stats := SessionStats{PocketCounts: map[string]int{}}

	for _, hand := range hands {
		stats.Hands++

		final := replay.Reconstruct(hand, replay.End(hand))
		if final.Pot > stats.BiggestPot {
			stats.BiggestPot = final.Pot
		}

		if hand.Hero == "" {
			continue
		}
		stats.HeroHands++

		if start, ok := hand.PlayerByName(hand.Hero); ok {
			stats.NetChips += final.Stacks[hand.Hero] - start.Chips
		}

		if heroVoluntarilyInvested(hand) {
			stats.VPIPHands++
		}

		if class, ok := PocketClass(hand.HoleCards); ok {
			stats.PocketCounts[class]++
		}
	}

	return stats
}

// VPIPPercent returns the hero's voluntarily-put-in-pot rate.
func (s SessionStats) VPIPPercent() float64 {
	if s.HeroHands == 0 {
		return 0
	}
	return 100 * float64(s.VPIPHands) / float64(s.HeroHands)
}

// TopPockets returns the hero's most frequent starting-hand classes, most
// frequent first, ties broken alphabetically.
func (s SessionStats) TopPockets(n int) []string {
	classes := make([]string, 0, len(s.PocketCounts))
	for class := range s.PocketCounts {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		ci, cj := s.PocketCounts[classes[i]], s.PocketCounts[classes[j]]
		if ci != cj {
			return ci > cj
		}
		return classes[i] < classes[j]
	})
	if n > len(classes) {
		n = len(classes)
	}
	return classes[:n]
}

// heroVoluntarilyInvested reports whether the hero bet, called or raised at
// any point. Posting blinds or antes and folding do not count.
func heroVoluntarilyInvested(h *handhistory.Hand) bool {
	for _, street := range handhistory.Streets() {
		for _, a := range h.Actions[street] {
			if a.Player != h.Hero {
				continue
			}
			switch replay.Classify(a) {
			case replay.KindWager, replay.KindRaise:
				return true
			}
		}
	}
	return false
}

// PocketClass canonicalizes a two-card hole string like "As Td" into the
// range notation used by preflop charts: pairs as "TT", suited as "ATs",
// offsuit as "ATo", higher rank first.
func PocketClass(holeCards string) (string, bool) {
	cards := deck.ParseCards(holeCards)
	if len(cards) != 2 {
		return "", false
	}

	hi, lo := cards[0], cards[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return fmt.Sprintf("%s%s", hi.Rank, lo.Rank), true
	}
	suffix := "o"
	if hi.Suit == lo.Suit {
		suffix = "s"
	}
	return fmt.Sprintf("%s%s%s", hi.Rank, lo.Rank, suffix), true
}
