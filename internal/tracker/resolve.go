package tracker

import "sort"

// Resolve returns the primary-venue symbols whose normalized key has no
// match in the reference union, sorted for deterministic output.
//
// An empty primary set short-circuits to an empty result: a primary-venue
// outage must not report the whole known unique set as freshly added once
// the outage resolves.
func Resolve(primary, references []string) []string {
	if len(primary) == 0 {
		return []string{}
	}

	refKeys := make(map[string]struct{}, len(references))
	for _, symbol := range references {
		refKeys[Normalize(symbol)] = struct{}{}
	}

	// Two primary symbols can normalize to the same key; last write wins.
	byKey := make(map[string]string, len(primary))
	for _, symbol := range primary {
		byKey[Normalize(symbol)] = symbol
	}

	unique := make([]string, 0)
	for key, symbol := range byKey {
		if _, listed := refKeys[key]; !listed {
			unique = append(unique, symbol)
		}
	}
	sort.Strings(unique)
	return unique
}
