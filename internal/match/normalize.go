// Package match holds the text heuristics the resolver uses to compare
// loosely-structured catalog metadata: title normalization for building
// search queries and fuzzy matching for validating candidates.
package match

import (
	"regexp"
	"strings"
)

// bracketed matches any parenthesized or bracketed segment, e.g.
// "(feat. X)" or "[Deluxe Edition]", wherever it appears.
var bracketed = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

// qualifier matches the vocabulary of dash-separated suffixes that carry
// no identifying information. Word-initial so "Alive" or "Oliver" do not
// trigger; "Remastered" still matches via the "remaster" stem.
var qualifier = regexp.MustCompile(`(?i)\b(remaster|deluxe|bonus|anniversary|expanded|live)`)

// NormalizeTitle strips noise from a raw title to produce a search-friendly
// string: bracketed annotations anywhere, and a trailing " - Remastered
// 2024"-style qualifier together with everything after it. Pure and total;
// normalizing an already-normalized title is a no-op.
func NormalizeTitle(raw string) string {
	s := bracketed.ReplaceAllString(raw, " ")
	s = trimDashQualifier(s)
	return strings.Join(strings.Fields(s), " ")
}

// trimDashQualifier removes trailing " - <qualifier...>" segments. It cuts
// at the last dash whose tail contains a qualifier token and repeats, so
// "Song - Live - 2011 Remaster" collapses to "Song".
func trimDashQualifier(s string) string {
	for {
		idx := strings.LastIndex(s, " - ")
		if idx == -1 {
			return s
		}
		if !qualifier.MatchString(s[idx+3:]) {
			return s
		}
		s = strings.TrimRight(s[:idx], " ")
	}
}
