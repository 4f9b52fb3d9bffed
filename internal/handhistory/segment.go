package handhistory

import "strings"

// handGroup is one hand's worth of raw lines, starting at its header.
type handGroup struct {
	startLine int // 1-based line number of the header in the file
	lines     []string
}

// segment splits a file's lines into per-hand groups at header boundaries.
// Lines before the first header (blank padding, room banners) are discarded;
// a non-empty file with no header at all yields zero groups, which the
// caller reports as a diagnostic rather than a fatal error.
func segment(lines []string) []handGroup {
	var groups []handGroup
	var current *handGroup

	for i, raw := range lines {
		if strings.HasPrefix(raw, HeaderPrefix) {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &handGroup{startLine: i + 1}
		}
		if current != nil {
			current.lines = append(current.lines, raw)
		}
	}
	if current != nil {
		groups = append(groups, *current)
	}
	return groups
}

// hasContent reports whether any line carries non-whitespace text.
func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
