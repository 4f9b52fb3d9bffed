package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DetectLatestSession finds the most recently modified session file in dir
// matching pattern, e.g. "FT*.txt".
func DetectLatestSession(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("bad session pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no session files matching %s in %s", pattern, dir)
	}
	sortByModTimeDesc(matches)
	return matches[0], nil
}

// sortByModTimeDesc sorts paths newest-first with a single os.Stat per file.
func sortByModTimeDesc(paths []string) {
	modTimes := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			modTimes[p] = info.ModTime()
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return modTimes[paths[i]].After(modTimes[paths[j]])
	})
}
