// Package resolver implements the resolution pipeline: given a title, an
// optional artist, and an entity type from the source catalog, find the one
// target-catalog entry that most plausibly represents the same work. It
// escalates through progressively looser search queries and falls back to
// listing a matched artist's full catalog before reporting absence.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sydlexius/crossfade/internal/catalog"
	"github.com/sydlexius/crossfade/internal/match"
)

// SearchClient is the slice of the target-catalog client the pipeline
// needs. Both operations recover transport failures as empty results, so
// the pipeline itself never sees an upstream error.
type SearchClient interface {
	Search(ctx context.Context, term string, t catalog.EntityType) []catalog.Entry
	ListCatalog(ctx context.Context, artistID int64, t catalog.EntityType) []catalog.Entry
}

// Resolver drives the search-and-select pipeline against a target catalog.
// It holds no per-request state; one Resolver serves all requests.
type Resolver struct {
	client SearchClient
	logger *slog.Logger
}

// New creates a Resolver.
func New(client SearchClient, logger *slog.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger.With(slog.String("component", "resolver")),
	}
}

// Resolve finds the target-catalog entry for the given metadata, or nil
// when no plausible match exists. Absence is a normal outcome, never an
// error, and never a low-confidence guess: every returned entry has passed
// the matching policy.
func (r *Resolver) Resolve(ctx context.Context, t catalog.EntityType, title, artist string) *catalog.Entry {
	for _, query := range buildQueries(t, title, artist) {
		entries := r.client.Search(ctx, query, t)
		if entry := r.selectEntry(entries, t, title, artist); entry != nil {
			r.logger.Debug("resolved via search",
				slog.String("query", query),
				slog.String("type", string(t)))
			return entry
		}
	}

	// Free-text search is weak for niche or non-Latin-script titles; a
	// catalog listing by known artist id is exhaustive. Artist lookups have
	// no further fallback.
	if t == catalog.Artist {
		return nil
	}
	return r.resolveViaArtistCatalog(ctx, t, title, artist)
}

// buildQueries returns the ordered search queries, most informative first.
// Identical consecutive queries (raw title already normalized) collapse to
// avoid repeating the exact same upstream call.
func buildQueries(t catalog.EntityType, title, artist string) []string {
	if t == catalog.Artist {
		// Artist lookups carry the artist name in the title slot when no
		// separate artist string exists.
		name := artist
		if name == "" {
			name = title
		}
		return []string{name}
	}

	normalized := match.NormalizeTitle(title)
	var queries []string
	if artist != "" {
		queries = []string{normalized + " " + artist, title + " " + artist, normalized}
	} else {
		queries = []string{normalized, title}
	}

	deduped := queries[:0:len(queries)]
	for _, q := range queries {
		if len(deduped) > 0 && deduped[len(deduped)-1] == q {
			continue
		}
		deduped = append(deduped, q)
	}
	return deduped
}

// resolveViaArtistCatalog resolves the artist first, then searches their
// full catalog of the target type. Multi-artist credits ("A, B") also try
// the lead artist alone. A failed lookup for one candidate name is
// recoverable; the next name is tried.
func (r *Resolver) resolveViaArtistCatalog(ctx context.Context, t catalog.EntityType, title, artist string) *catalog.Entry {
	for _, name := range candidateArtistNames(artist) {
		artistID := r.findArtistID(ctx, name)
		if artistID == 0 {
			continue
		}

		listing := r.client.ListCatalog(ctx, artistID, t)
		// Artist identity is established by having located this catalog;
		// the selector must not re-filter by artist name here.
		if entry := r.selectEntry(listing, t, title, ""); entry != nil {
			r.logger.Debug("resolved via artist catalog",
				slog.String("artist", name),
				slog.Int64("artist_id", artistID),
				slog.String("type", string(t)))
			return entry
		}
	}
	return nil
}

// candidateArtistNames returns the artist-name variants to try: the full
// credit string and, for comma-separated multi-artist credits, the lead
// artist before the first comma.
func candidateArtistNames(artist string) []string {
	if artist == "" {
		return nil
	}
	names := []string{artist}
	if idx := strings.Index(artist, ","); idx != -1 {
		if lead := strings.TrimSpace(artist[:idx]); lead != "" {
			names = append(names, lead)
		}
	}
	return names
}

// findArtistID searches the target catalog for an artist by name and
// returns the id of the first result whose name fuzzy-matches and that
// carries a usable catalog id, or 0 when none does.
func (r *Resolver) findArtistID(ctx context.Context, name string) int64 {
	for _, e := range r.client.Search(ctx, name, catalog.Artist) {
		if e.ArtistName == "" || e.ArtistID == 0 {
			continue
		}
		if match.Same(e.ArtistName, name) {
			return e.ArtistID
		}
	}
	return 0
}
