package match

import "strings"

// AuthorsMatch reports whether two primary-author strings denote the same
// person. Case-insensitive substring containment in either direction counts
// as a match, and so does an abbreviated given name against the same
// surname ("J. Smith" vs "Jane Smith"). Deliberately permissive: a
// primary-author match is treated as sufficient evidence of identity.
// Returns false when either side is empty.
func AuthorsMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return initialsMatch(a, b) || initialsMatch(b, a)
}

// initialsMatch reports whether a is an initialed form of b: identical
// surnames, and every leading name part of a is a prefix of (or an initial
// for) the corresponding part of b.
func initialsMatch(a, b string) bool {
	partsA := strings.Fields(a)
	partsB := strings.Fields(b)
	if len(partsA) < 2 || len(partsA) != len(partsB) {
		return false
	}
	if partsA[len(partsA)-1] != partsB[len(partsB)-1] {
		return false
	}
	for i := 0; i < len(partsA)-1; i++ {
		pa := strings.TrimSuffix(partsA[i], ".")
		pb := strings.TrimSuffix(partsB[i], ".")
		if pa == "" || pb == "" {
			return false
		}
		if !strings.HasPrefix(pb, pa) && !strings.HasPrefix(pa, pb) {
			return false
		}
	}
	return true
}
