package handhistory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// HandError describes a hand that could not be built, with enough context
// to locate it in the source file.
type HandError struct {
	Line   int    // 1-based line number of the hand's header
	Header string // truncated header text
	Err    error
}

func (e *HandError) Error() string {
	return fmt.Sprintf("hand at line %d: %v (header: %s)", e.Line, e.Err, e.Header)
}

func (e *HandError) Unwrap() error { return e.Err }

// ParseResult is the outcome of parsing one hand-history stream: the hands
// that built cleanly, in file order, plus a diagnostic for each hand that
// was skipped. Hands are immutable once returned.
type ParseResult struct {
	Hands       []*Hand
	Diagnostics []*HandError
}

// Parse reads a Full Tilt hand-history stream and builds structured hands.
// Bad hands are skipped and reported through Diagnostics rather than
// aborting the parse; a non-empty stream with no hand header at all yields
// zero hands and a single diagnostic. Invalid UTF-8 is replaced, matching
// the tolerant read behavior of the card room's own files.
func Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.ToValidUTF8(scanner.Text(), "�"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hand history: %w", err)
	}

	result := &ParseResult{}
	groups := segment(lines)

	if len(groups) == 0 {
		if hasContent(lines) {
			result.Diagnostics = append(result.Diagnostics, &HandError{
				Line:   1,
				Header: ellipsis(firstContentLine(lines), 80),
				Err:    fmt.Errorf("no hand header found"),
			})
		}
		return result, nil
	}

	for _, group := range groups {
		hand, err := buildHand(group)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, &HandError{
				Line:   group.startLine,
				Header: ellipsis(group.lines[0], 80),
				Err:    err,
			})
			continue
		}
		result.Hands = append(result.Hands, hand)
	}
	return result, nil
}

// ParseFile parses a hand-history file from disk.
func ParseFile(path string) (*ParseResult, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func firstContentLine(lines []string) string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}

// ellipsis truncates s to at most maxLen runes, appending "..." when cut.
func ellipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		maxLen = 3
	}
	return string(runes[:maxLen-3]) + "..."
}
