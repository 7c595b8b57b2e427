package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// normalizeKey folds user input into the snake_case key form used by every vocabulary.
// "Current Events", "current-events" and "CURRENT_EVENTS" all become "current_events".
func normalizeKey(s string) string {
	s = folder.String(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' || r == '\t' {
			return '_'
		}
		return r
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// vocabEntry pairs the stable key of a vocabulary value with its display name.
type vocabEntry struct {
	key     string
	display string
}

// buildIndex returns the reverse lookup for a vocabulary table indexed by raw value.
// Both the key and the normalized display name resolve to the raw value.
func buildIndex(table []vocabEntry) map[string]int {
	idx := make(map[string]int, len(table)*2)
	for raw, e := range table {
		if e.key == "" {
			continue
		}
		idx[e.key] = raw
		idx[normalizeKey(e.display)] = raw
	}
	return idx
}
