// Package itunes implements the target-catalog client against the iTunes
// Search API, Apple's public unauthenticated search and lookup endpoints.
// The client is pure transport: it maps entity types to API parameters and
// decodes responses, but makes no matching decisions.
package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sydlexius/crossfade/internal/catalog"
)

const defaultBaseURL = "https://itunes.apple.com"

// Result bounds. Search trusts relevance order, so a small page is enough;
// a catalog listing must be close to exhaustive for the fallback to work.
const (
	searchLimit  = 10
	listingLimit = 200
)

// Adapter is the iTunes Search API client. No authentication is required.
type Adapter struct {
	client  *http.Client
	limiter *catalog.RateLimiterMap
	logger  *slog.Logger
	baseURL string
	country string
}

// New creates an iTunes adapter for the given storefront country code.
func New(limiter *catalog.RateLimiterMap, logger *slog.Logger, country string) *Adapter {
	return NewWithBaseURL(limiter, logger, country, defaultBaseURL)
}

// NewWithBaseURL creates an iTunes adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *catalog.RateLimiterMap, logger *slog.Logger, country, baseURL string) *Adapter {
	if country == "" {
		country = "us"
	}
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		logger:  logger.With(slog.String("catalog", catalog.NameITunes)),
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
	}
}

// entityParam maps an entity type to the iTunes "entity" parameter.
func entityParam(t catalog.EntityType) string {
	switch t {
	case catalog.Track:
		return "song"
	case catalog.Album:
		return "album"
	case catalog.Artist:
		return "musicArtist"
	}
	return ""
}

// Search runs a free-text search for entries of the given type. Any
// transport failure yields an empty slice: upstream flakiness is recovered
// here and never surfaces to the resolver.
func (a *Adapter) Search(ctx context.Context, term string, t catalog.EntityType) []catalog.Entry {
	if term == "" {
		return nil
	}

	params := url.Values{
		"term":    {term},
		"media":   {"music"},
		"entity":  {entityParam(t)},
		"country": {a.country},
		"limit":   {strconv.Itoa(searchLimit)},
	}
	reqURL := a.baseURL + "/search?" + params.Encode()

	entries, err := a.fetch(ctx, reqURL)
	if err != nil {
		a.logger.Warn("search failed",
			slog.String("term", term),
			slog.String("entity", string(t)),
			slog.String("error", err.Error()))
		return nil
	}

	a.logger.Debug("search completed",
		slog.String("term", term),
		slog.String("entity", string(t)),
		slog.Int("results", len(entries)))

	return entries
}

// ListCatalog fetches the full catalog of the given type owned by a known
// artist id, filtering out the self-referential artist record the lookup
// endpoint prepends. Transport failure yields an empty slice; the fallback
// treats that as "this candidate name failed, try the next".
func (a *Adapter) ListCatalog(ctx context.Context, artistID int64, t catalog.EntityType) []catalog.Entry {
	if artistID == 0 {
		return nil
	}

	params := url.Values{
		"id":     {strconv.FormatInt(artistID, 10)},
		"entity": {entityParam(t)},
		"limit":  {strconv.Itoa(listingLimit)},
	}
	reqURL := a.baseURL + "/lookup?" + params.Encode()

	entries, err := a.fetch(ctx, reqURL)
	if err != nil {
		a.logger.Warn("catalog listing failed",
			slog.Int64("artist_id", artistID),
			slog.String("entity", string(t)),
			slog.String("error", err.Error()))
		return nil
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if e.IsArtistRecord() && t != catalog.Artist {
			continue
		}
		filtered = append(filtered, e)
	}

	a.logger.Debug("catalog listing completed",
		slog.Int64("artist_id", artistID),
		slog.String("entity", string(t)),
		slog.Int("results", len(filtered)))

	return filtered
}

// fetch executes a GET request and decodes the standard iTunes result
// envelope into catalog entries.
func (a *Adapter) fetch(ctx context.Context, reqURL string) ([]catalog.Entry, error) {
	if err := a.limiter.Wait(ctx, catalog.NameITunes); err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameITunes, Resource: reqURL}
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("rate limited by server (status %d)", resp.StatusCode),
		}
	default:
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   err,
		}
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	entries := make([]catalog.Entry, 0, len(envelope.Results))
	for _, r := range envelope.Results {
		entries = append(entries, r.toEntry())
	}
	return entries, nil
}
