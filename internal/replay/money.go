package replay

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/ftreplay/internal/handhistory"
)

var (
	reAmount      = regexp.MustCompile(`\d[\d,]*`)
	reRaiseTarget = regexp.MustCompile(`to\s+(\d[\d,]*)`)
	reReturnedTo  = regexp.MustCompile(`returned to\s+(.+)$`)
)

// Effect is the chip movement caused by one action: how the pot changes,
// the player's new street contribution, and how their stack changes.
// AmountMissing reports that a detail string expected to carry an amount did
// not parse as one; the effect then defaults to zero rather than failing,
// and the engine counts the occurrence for diagnosability.
type Effect struct {
	PotDelta        int
	NewContribution int
	StackDelta      int
	AmountMissing   bool
}

// Apply interprets one action's detail text as a chip-amount effect, given
// the player's running contribution for the current street. It is a pure
// function of its inputs.
func Apply(a handhistory.Action, contribution int) Effect {
	switch Classify(a) {
	case KindPost, KindWager:
		amount, ok := firstAmount(a.Detail)
		return Effect{
			PotDelta:        amount,
			NewContribution: contribution + amount,
			StackDelta:      -amount,
			AmountMissing:   !ok,
		}

	case KindAnte:
		amount, ok := firstAmount(a.Detail)
		return Effect{
			PotDelta:        amount,
			NewContribution: contribution,
			StackDelta:      -amount,
			AmountMissing:   !ok,
		}

	case KindRaise:
		// The detail states the new street total, not the increment.
		// Contribution resets at the start of each street, so the delta is
		// correct across multi-raise and multi-street sequences.
		target, ok := raiseTarget(a.Detail)
		delta := target - contribution
		if delta < 0 {
			delta = 0
		}
		return Effect{
			PotDelta:        delta,
			NewContribution: contribution + delta,
			StackDelta:      -delta,
			AmountMissing:   !ok,
		}

	case KindUncalled:
		amount, ok := firstAmount(a.Detail)
		return Effect{
			PotDelta:        -amount,
			NewContribution: contribution - amount,
			StackDelta:      amount,
			AmountMissing:   !ok,
		}

	case KindPayout:
		// The pot has already been disbursed at this point in the log; the
		// payout only grows the winner's stack.
		amount, ok := firstAmount(a.Detail)
		return Effect{
			PotDelta:        0,
			NewContribution: contribution,
			StackDelta:      amount,
			AmountMissing:   !ok,
		}

	default:
		return Effect{NewContribution: contribution}
	}
}

// PayoutAmount extracts the amount collected by a wins/collected action.
func PayoutAmount(a handhistory.Action) (int, bool) {
	return firstAmount(a.Detail)
}

// UncalledRecipient resolves who an uncalled bet is returned to: the
// "returned to <name>" clause when present, otherwise the action's stated
// player.
func UncalledRecipient(a handhistory.Action) string {
	if m := reReturnedTo.FindStringSubmatch(a.Detail); m != nil {
		return strings.TrimSpace(m[1])
	}
	return a.Player
}

// firstAmount extracts the first integer-looking token from detail text,
// tolerating thousands separators. Returns ok=false when no amount is
// present.
func firstAmount(detail string) (int, bool) {
	m := reAmount.FindString(detail)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// raiseTarget extracts the "to <amount>" target total of a raise.
func raiseTarget(detail string) (int, bool) {
	m := reRaiseTarget.FindStringSubmatch(detail)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
