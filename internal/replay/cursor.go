package replay

import "github.com/lox/ftreplay/internal/handhistory"

// Cursor identifies a point in a hand's action log: every action of every
// earlier street has been observed, plus actions [0..Index] of Street.
// An Index of -1 on a street means the street has been entered but none of
// its actions observed yet; Start uses it so the very first step of a hand
// shows the table before any action.
type Cursor struct {
	Street handhistory.Street
	Index  int
}

// Before reports whether c strictly precedes o in replay order.
func (c Cursor) Before(o Cursor) bool {
	if c.Street != o.Street {
		return c.Street < o.Street
	}
	return c.Index < o.Index
}

// Start returns the cursor positioned on the first action of the hand, or
// before any action when the hand has none.
func Start(h *handhistory.Hand) Cursor {
	for _, s := range handhistory.Streets() {
		if len(h.Actions[s]) > 0 {
			return Cursor{Street: s, Index: 0}
		}
	}
	return Cursor{Street: handhistory.Preflop, Index: -1}
}

// End returns the cursor positioned on the last action of the hand.
func End(h *handhistory.Hand) Cursor {
	streets := handhistory.Streets()
	for i := len(streets) - 1; i >= 0; i-- {
		if n := len(h.Actions[streets[i]]); n > 0 {
			return Cursor{Street: streets[i], Index: n - 1}
		}
	}
	return Cursor{Street: handhistory.Preflop, Index: -1}
}

// Clamp pins a cursor to the nearest valid position within the hand.
// Reconstruction never fails on out-of-range cursors; the viewer driving
// the cursor is expected to already respect bounds, so clamping is only a
// backstop.
func Clamp(h *handhistory.Hand, c Cursor) Cursor {
	if c.Street < handhistory.Preflop {
		c.Street = handhistory.Preflop
	}
	if c.Street > handhistory.River {
		c.Street = handhistory.River
	}
	n := len(h.Actions[c.Street])
	if c.Index >= n {
		c.Index = n - 1
	}
	if c.Index < -1 {
		c.Index = -1
	}
	if start := Start(h); c.Before(start) {
		return start
	}
	return c
}

// Next advances the cursor one action, crossing into the next street that
// has actions when the current one is exhausted. Returns ok=false at the
// end of the hand.
func Next(h *handhistory.Hand, c Cursor) (Cursor, bool) {
	if c.Index+1 < len(h.Actions[c.Street]) {
		return Cursor{Street: c.Street, Index: c.Index + 1}, true
	}
	for s := c.Street + 1; s <= handhistory.River; s++ {
		if len(h.Actions[s]) > 0 {
			return Cursor{Street: s, Index: 0}, true
		}
	}
	return c, false
}

// Prev moves the cursor one action backward, crossing into the previous
// street that has actions. Returns ok=false at the start of the hand.
func Prev(h *handhistory.Hand, c Cursor) (Cursor, bool) {
	if c.Index > 0 {
		return Cursor{Street: c.Street, Index: c.Index - 1}, true
	}
	for s := c.Street - 1; s >= handhistory.Preflop; s-- {
		if n := len(h.Actions[s]); n > 0 {
			return Cursor{Street: s, Index: n - 1}, true
		}
	}
	return c, false
}
