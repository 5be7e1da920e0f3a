package match

import (
	"strings"

	"github.com/xrash/smetrics"
)

// fold reduces a string to its comparable core: lowercase with every rune
// outside [a-z0-9] deleted. Punctuation, whitespace, and ASCII-folded
// diacritic leftovers all collapse away.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Same reports whether two free-text strings plausibly denote the same
// entity: after folding, one must contain the other. Symmetric in its
// arguments. An empty folded operand is contained in everything, so callers
// must exclude genuinely empty candidate fields before calling rather than
// relying on this function to reject them.
func Same(a, b string) bool {
	fa, fb := fold(a), fold(b)
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

// Similarity returns the Jaro-Winkler similarity of the folded strings, in
// [0, 1]. Used for diagnostic logging only; the accept/reject decision is
// always Same.
func Similarity(a, b string) float64 {
	return smetrics.JaroWinkler(fold(a), fold(b), 0.7, 4)
}
