package match

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// MinSimilarity is the score below which a candidate is not suggested.
const MinSimilarity = 0.5

// Suggest returns up to limit candidates that look like target, closest first.
// Names are compared after NormalizeProperty.
func Suggest(target string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	if limit <= 0 {
		return nil
	}

	norm := NormalizeProperty(target)

	var ranked []scored
	for _, c := range candidates {
		score := Similarity(norm, NormalizeProperty(c))
		if score >= MinSimilarity && !slices.ContainsFunc(ranked, func(s scored) bool { return s.name == c }) {
			ranked = append(ranked, scored{c, score})
		}
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, s := range ranked[:min(limit, len(ranked))] {
		out = append(out, s.name)
	}

	return out
}

// SuggestType is Suggest for qualified type names: an unqualified target is
// compared with the name part of each candidate, "Shap" suggests
// "fixture.Shape".
func SuggestType(target string, candidates []string, limit int) []string {
	if strings.Contains(target, ".") {
		return Suggest(target, candidates, limit)
	}

	byName := make(map[string][]string)
	for _, c := range candidates {
		name := c[strings.LastIndexByte(c, '.')+1:]
		byName[name] = append(byName[name], c)
	}

	var out []string
	for _, name := range Suggest(target, slices.Collect(maps.Keys(byName)), limit) {
		out = append(out, byName[name]...)
	}

	return out[:min(limit, len(out))]
}
