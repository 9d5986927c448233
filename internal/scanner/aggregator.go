package scanner

import (
	"strings"

	"github.com/mvp-joe/project-glean/internal/rules"
)

// Aggregate merges per-file results, which must already be in enumeration
// order, into one result set per requested category. Failed files are
// returned as skipped and contribute nothing. Every requested category gets a
// set: StatusReady with occurrences, or StatusEmpty without.
func Aggregate(results []FileResult, categories ...rules.Category) (map[rules.Category]ResultSet, []SkippedFile) {
	if len(categories) == 0 {
		categories = rules.Categories
	}

	sets := make(map[rules.Category]ResultSet, len(categories))
	for _, c := range categories {
		sets[c] = ResultSet{Category: c, Status: StatusEmpty}
	}

	var skipped []SkippedFile
	for _, fr := range results {
		if fr.Err != nil {
			skipped = append(skipped, SkippedFile{Path: fr.Path, Err: fr.Err, Reason: fr.Err.Error()})
			continue
		}
		for _, occ := range fr.Occurrences {
			rs, ok := sets[occ.Category]
			if !ok {
				continue
			}
			if strings.TrimSpace(occ.Text) == "" {
				continue
			}
			rs.Occurrences = append(rs.Occurrences, occ)
			rs.Status = StatusReady
			sets[occ.Category] = rs
		}
	}

	return sets, skipped
}
