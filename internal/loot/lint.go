package loot

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// nearDuplicateThreshold is the Jaro-Winkler score above which two distinct
// list entries are reported as a probable typo.
const nearDuplicateThreshold = 0.95

// NearDuplicate is a pair of list entries that differ only slightly.
type NearDuplicate struct {
	A, B  string
	Score float64
}

// LintNames reports pairs of names that are suspiciously similar but not
// equal (ignoring case), logging a warning for each. kind names the list in
// the log output.
func LintNames(kind string, names []string) []NearDuplicate {
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		sorted = append(sorted, strings.ToLower(strings.TrimSpace(n)))
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var out []NearDuplicate
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			score := matchr.JaroWinkler(sorted[i], sorted[j], false)
			if score < nearDuplicateThreshold {
				continue
			}
			out = append(out, NearDuplicate{A: sorted[i], B: sorted[j], Score: score})
			slog.Warn("loot: list entries look like a typo of each other",
				"list", kind,
				"a", sorted[i],
				"b", sorted[j],
				"score", score,
			)
		}
	}
	return out
}
