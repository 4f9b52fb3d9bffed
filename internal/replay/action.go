// Package replay reconstructs point-in-time table state from a parsed hand.
// Reconstruction is a pure fold over the hand's action log up to a cursor;
// every call returns a fresh snapshot, so backward navigation is simply a
// recompute with a smaller cursor.
package replay

import "github.com/lox/ftreplay/internal/handhistory"

// VerbKind groups action verbs into families so the money evaluator and the
// set-accumulation passes can match exhaustively instead of comparing verb
// strings all over the engine.
type VerbKind int

const (
	// KindPost covers blind and straddle posts: pot, street contribution
	// and stack all move.
	KindPost VerbKind = iota
	// KindAnte moves pot and stack but deliberately not street
	// contribution, so facing-a-bet logic is not confused by antes.
	KindAnte
	// KindWager covers bets and calls: amount is a delta.
	KindWager
	// KindRaise carries a "raises to N" target total, not a delta.
	KindRaise
	// KindUncalled is a returned-bet notice reversing pot and contribution.
	KindUncalled
	// KindCheck has no money effect.
	KindCheck
	// KindFold adds the player to the folded set.
	KindFold
	// KindShow reveals the player's hole cards.
	KindShow
	// KindMuck hides the player's cards at showdown; the summary section
	// may still reveal them.
	KindMuck
	// KindPayout covers wins/collected: stack grows, pot is untouched
	// because it has already been logically disbursed in the log.
	KindPayout
	// KindSitOut adds the player to the sitting-out set.
	KindSitOut
	// KindReturn removes the player from the sitting-out set.
	KindReturn
	// KindBoard is a synthetic community-card reveal.
	KindBoard
	// KindPassthrough is an unrecognized verb kept for display only.
	KindPassthrough
)

// Classify maps an action's verb to its family. Unknown verbs are
// passthroughs, never errors: the parser is deliberately permissive about
// room chatter.
func Classify(a handhistory.Action) VerbKind {
	switch a.Verb {
	case "posts":
		return KindPost
	case "antes":
		return KindAnte
	case "bets", "calls":
		return KindWager
	case "raises":
		return KindRaise
	case "uncalled":
		return KindUncalled
	case "checks":
		return KindCheck
	case "folds":
		return KindFold
	case "shows":
		return KindShow
	case "mucks":
		return KindMuck
	case "collected", "wins":
		return KindPayout
	case "is sitting out":
		return KindSitOut
	case "has returned":
		return KindReturn
	case handhistory.VerbBoard:
		return KindBoard
	default:
		return KindPassthrough
	}
}
