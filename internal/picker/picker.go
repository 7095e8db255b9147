// Package picker backs the category chooser: given the known category
// names and a search query, it returns one ranked, paginated page of
// candidates plus an "add new" intent when the query names a category
// that does not exist yet. It is a plain request/response API; the HTTP
// layer renders it as a modal, but nothing here knows that.
package picker

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"tally/internal/view"
)

// Result is one page of ranked candidates.
type Result struct {
	Names      []string
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	// CanCreate is set when the query is non-empty and matches no
	// existing name exactly; the UI offers "add <query>".
	CanCreate   bool
	CreateLabel string
}

// maxDistance caps how fuzzy a non-substring match may be before it is
// ranked out entirely.
const maxDistance = 3

type scored struct {
	name string
	rank int
}

// Search filters and ranks names against query, then returns the
// requested page. Ranking: exact match, then prefix, then substring,
// then close Levenshtein matches; ties keep alphabetical order. An empty
// query lists everything alphabetically.
func Search(names []string, query string, page int) Result {
	q := strings.ToUpper(strings.TrimSpace(query))

	ranked := rank(names, q)
	p := view.Paginate(len(ranked), page)
	out := make([]string, 0, len(p.Items))
	for _, i := range p.Items {
		out = append(out, ranked[i])
	}

	res := Result{
		Names:      out,
		Page:       p.Number,
		TotalPages: p.TotalPages,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
	if q != "" && !containsExact(names, q) {
		res.CanCreate = true
		res.CreateLabel = q
	}
	return res
}

func rank(names []string, q string) []string {
	if q == "" {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		return sorted
	}
	var hits []scored
	for _, name := range names {
		upper := strings.ToUpper(name)
		switch {
		case upper == q:
			hits = append(hits, scored{name, 0})
		case strings.HasPrefix(upper, q):
			hits = append(hits, scored{name, 1})
		case strings.Contains(upper, q):
			hits = append(hits, scored{name, 2})
		default:
			if d := levenshtein.ComputeDistance(upper, q); d <= maxDistance {
				hits = append(hits, scored{name, 2 + d})
			}
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].rank != hits[b].rank {
			return hits[a].rank < hits[b].rank
		}
		return hits[a].name < hits[b].name
	})
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func containsExact(names []string, q string) bool {
	for _, name := range names {
		if strings.ToUpper(name) == q {
			return true
		}
	}
	return false
}
