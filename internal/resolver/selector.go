package resolver

import (
	"log/slog"

	"github.com/sydlexius/crossfade/internal/catalog"
	"github.com/sydlexius/crossfade/internal/match"
)

// selectEntry picks the first plausible entry from candidates, iterating in
// the order received — search relevance order is trusted, the selector never
// re-ranks. Returns nil when nothing passes the policy; absence is a valid,
// expected outcome.
//
// Policy: for artists the candidate's artist name must fuzzy-match the
// expected artist (or the title when no artist string exists). For tracks
// and albums the type-appropriate name must fuzzy-match the expected title,
// and when both sides carry artist information the artists must also
// fuzzy-match — a title hit with the wrong artist is rejected outright, not
// deprioritized. A title hit with no artist information on either side is
// accepted, trading precision for recall on legitimately artist-less
// metadata.
func (r *Resolver) selectEntry(candidates []catalog.Entry, t catalog.EntityType, expectedTitle, expectedArtist string) *catalog.Entry {
	if t == catalog.Artist {
		expected := expectedArtist
		if expected == "" {
			expected = expectedTitle
		}
		for i, e := range candidates {
			if e.ArtistName == "" {
				continue
			}
			if match.Same(e.ArtistName, expected) {
				return &candidates[i]
			}
		}
		return nil
	}

	for i, e := range candidates {
		name := e.Name(t)
		if name == "" {
			continue
		}
		if !match.Same(name, expectedTitle) {
			r.logger.Debug("candidate title rejected",
				slog.String("candidate", name),
				slog.String("expected", expectedTitle),
				slog.Float64("similarity", match.Similarity(name, expectedTitle)))
			continue
		}
		if expectedArtist != "" && e.ArtistName != "" && !match.Same(e.ArtistName, expectedArtist) {
			r.logger.Debug("candidate artist rejected",
				slog.String("candidate", e.ArtistName),
				slog.String("expected", expectedArtist),
				slog.Float64("similarity", match.Similarity(e.ArtistName, expectedArtist)))
			continue
		}
		return &candidates[i]
	}
	return nil
}
