package analysis

import "sort"

// OptimizeTraits deduplicates by label (keeping the higher-scoring one),
// collapses near-duplicate traits into one representative per group, sorts
// good traits ahead of bad ones (ties broken by score descending), and
// caps the result at maxTraits.
//
// Grounded on the original traits/merger.rs's optimize_traits.
func OptimizeTraits(traits []Trait, maxTraits int) []Trait {
	traits = dedupeByLabel(traits)
	traits = mergeSimilarTraits(traits)

	sort.SliceStable(traits, func(i, j int) bool {
		a, b := traits[i], traits[j]
		if a.Good != b.Good {
			return a.Good
		}
		return a.Score > b.Score
	})

	if len(traits) > maxTraits {
		traits = traits[:maxTraits]
	}
	return traits
}

func dedupeByLabel(traits []Trait) []Trait {
	sort.SliceStable(traits, func(i, j int) bool {
		if traits[i].Label != traits[j].Label {
			return traits[i].Label < traits[j].Label
		}
		return traits[i].Score > traits[j].Score
	})

	result := make([]Trait, 0, len(traits))
	var lastLabel string
	seenAny := false
	for _, t := range traits {
		if seenAny && t.Label == lastLabel {
			continue
		}
		result = append(result, t)
		lastLabel = t.Label
		seenAny = true
	}
	return result
}

func mergeSimilarTraits(traits []Trait) []Trait {
	result := make([]Trait, 0, len(traits))
	seenGroups := make(map[string]bool)

	for _, t := range traits {
		key := traitGroupKey(t.Label)
		if seenGroups[key] {
			continue
		}
		seenGroups[key] = true
		result = append(result, t)
	}
	return result
}

// traitGroupKey collapses traits that measure the same underlying thing
// under different labels so only one representative survives.
func traitGroupKey(label string) string {
	switch {
	case labelIn(label, "Damage Core", "Primary Damage", "Low Output"):
		return "damage"
	case labelIn(label, "Vision Master", "Ward Hunter"):
		return "vision"
	case labelIn(label, "Rock Steady", "Stable"):
		return "stability"
	case labelIn(label, "Steady Scaling"):
		return "growth-steady"
	case labelIn(label, "On a Roll", "Cold Streak", "Trending Up", "Trending Down", "Hot Streak", "Recent Slump", "Dominant Run", "Extended Rut"):
		return "form"
	default:
		return label
	}
}

func labelIn(label string, candidates ...string) bool {
	for _, c := range candidates {
		if label == c {
			return true
		}
	}
	return false
}
