// Package watch follows a live Full Tilt session file and emits hands as
// they complete, so an import or display can keep up with play in progress.
package watch

import (
	"strings"

	"github.com/lox/ftreplay/internal/handhistory"
)

// HandFeed buffers raw session lines and emits hands at header boundaries.
// A hand is complete once the header of the next hand arrives; the trailing
// in-progress hand stays buffered until Flush.
type HandFeed struct {
	pending   []string
	firstLine int // 1-based source line of pending[0]
	nextLine  int
	hasHeader bool

	onDiagnostic func(*handhistory.HandError)
}

// NewHandFeed returns an empty feed. onDiagnostic receives parse failures
// for malformed hands and may be nil.
func NewHandFeed(onDiagnostic func(*handhistory.HandError)) *HandFeed {
	return &HandFeed{nextLine: 1, onDiagnostic: onDiagnostic}
}

// Add appends newly observed lines and returns any hands they completed.
func (f *HandFeed) Add(lines []string) []*handhistory.Hand {
	var hands []*handhistory.Hand
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), handhistory.HeaderPrefix) {
			hands = append(hands, f.emit()...)
			f.hasHeader = true
		}
		if len(f.pending) == 0 {
			f.firstLine = f.nextLine
		}
		f.pending = append(f.pending, line)
		f.nextLine++
	}
	return hands
}

// Flush parses whatever is still buffered. Call it when the session file is
// known to be complete, since the final hand has no following header.
func (f *HandFeed) Flush() []*handhistory.Hand {
	return f.emit()
}

func (f *HandFeed) emit() []*handhistory.Hand {
	defer func() {
		f.pending = f.pending[:0]
		f.hasHeader = false
	}()

	// Leading junk before the first header is not a hand.
	if !f.hasHeader {
		return nil
	}

	result, err := handhistory.Parse(strings.NewReader(strings.Join(f.pending, "\n")))
	if err != nil {
		if f.onDiagnostic != nil {
			f.onDiagnostic(&handhistory.HandError{Line: f.firstLine, Err: err})
		}
		return nil
	}
	for _, h := range result.Hands {
		h.SourceLine += f.firstLine - 1
	}
	if f.onDiagnostic != nil {
		for _, d := range result.Diagnostics {
			d.Line += f.firstLine - 1
			f.onDiagnostic(d)
		}
	}
	return result.Hands
}
