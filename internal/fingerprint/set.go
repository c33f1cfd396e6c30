package fingerprint

// Set is an unordered collection of sentence digests for one file. Repeated
// sentences collapse to a single fingerprint.
type Set map[string]struct{}

// NewSet returns an empty Set.
func NewSet() Set {
	return make(Set)
}

// Add inserts a digest.
func (s Set) Add(digest string) {
	s[digest] = struct{}{}
}

// Contains reports whether the digest is present.
func (s Set) Contains(digest string) bool {
	_, ok := s[digest]
	return ok
}

// Len returns the number of distinct fingerprints.
func (s Set) Len() int {
	return len(s)
}

// Equal reports whether two sets contain exactly the same digests.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for digest := range s {
		if _, ok := other[digest]; !ok {
			return false
		}
	}
	return true
}

// Intersection returns the number of digests present in both sets.
func (s Set) Intersection(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for digest := range small {
		if _, ok := large[digest]; ok {
			count++
		}
	}
	return count
}
