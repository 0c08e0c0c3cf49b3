package cases

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 2

// FindByTitle returns the entry of list whose title equals title exactly.
// The list is expected to be already filtered by the caller. On a miss the
// returned *TitleNotFoundError carries the closest titles.
func FindByTitle[T interface{ Info() Header }](list []T, title string) (T, error) {
	for _, item := range list {
		if item.Info().Title == title {
			return item, nil
		}
	}
	var zero T
	return zero, &TitleNotFoundError{Title: title, Suggestions: suggestTitles(list, title)}
}

func suggestTitles[T interface{ Info() Header }](list []T, title string) []string {
	type candidate struct {
		title string
		dist  int
	}
	want := strings.ToLower(title)
	var cands []candidate
	for _, item := range list {
		t := item.Info().Title
		d := levenshtein.ComputeDistance(want, strings.ToLower(t))
		if d <= max(3, len(t)/3) {
			cands = append(cands, candidate{title: t, dist: d})
		}
	}
	slices.SortStableFunc(cands, func(a, b candidate) int { return cmp.Compare(a.dist, b.dist) })

	var out []string
	for _, c := range cands {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.title)
	}
	return out
}
