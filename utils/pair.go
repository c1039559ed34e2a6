package utils

// CanonicalPair orders two user ids deterministically (lexicographic), so a
// pair maps to the same (a, b) regardless of which side initiated.
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// PairKey builds the canonical "<a>#<b>" key used as the Matches partition
// key. It is the idempotency key for match creation.
func PairKey(a, b string) string {
	x, y := CanonicalPair(a, b)
	return x + "#" + y
}
