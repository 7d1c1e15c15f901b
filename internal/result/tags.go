package result

// MatchTags reports whether two tag lists hold the same set of labels,
// independent of order and duplicate count. This is genuine set equality:
// the length-equality shortcut some clients use would let duplicates on one
// side mask a missing label on the other.
func MatchTags(expected, used []string) bool {
	expectedSet := toSet(expected)
	usedSet := toSet(used)
	if len(expectedSet) != len(usedSet) {
		return false
	}
	for tag := range expectedSet {
		if _, ok := usedSet[tag]; !ok {
			return false
		}
	}
	return true
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}
