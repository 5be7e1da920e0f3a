// Package spotify resolves source-catalog metadata from Spotify share
// links. It parses the link into an entity type and id, then scrapes the
// public share page's title tag for the display title and artist. No API
// key is needed; the share pages are served to anonymous clients.
package spotify

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sydlexius/crossfade/internal/catalog"
)

const defaultBaseURL = "https://open.spotify.com"

// Browser-like UA; the share pages serve a stripped response to unknown agents.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ErrUnsupportedLink indicates the URL is not a track, album, or artist
// share link. Playlists and other batch identifiers land here.
type ErrUnsupportedLink struct {
	URL string
}

func (e *ErrUnsupportedLink) Error() string {
	return fmt.Sprintf("unsupported spotify link: %s", e.URL)
}

// Link is a parsed Spotify share link.
type Link struct {
	Type catalog.EntityType
	ID   string
}

var pathTypes = map[string]catalog.EntityType{
	"track":  catalog.Track,
	"album":  catalog.Album,
	"artist": catalog.Artist,
}

// ParseLink parses an open.spotify.com URL into an entity type and id.
// Locale segments such as /intl-fr/ are tolerated. Anything other than the
// three supported entity types is rejected with ErrUnsupportedLink.
func ParseLink(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("parsing link: %w", err)
	}
	if u.Host != "open.spotify.com" {
		return Link{}, &ErrUnsupportedLink{URL: raw}
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}
	if len(segments) != 2 || segments[1] == "" {
		return Link{}, &ErrUnsupportedLink{URL: raw}
	}

	t, ok := pathTypes[segments[0]]
	if !ok {
		return Link{}, &ErrUnsupportedLink{URL: raw}
	}
	return Link{Type: t, ID: segments[1]}, nil
}

// Adapter fetches source metadata from Spotify share pages.
type Adapter struct {
	client  *http.Client
	limiter *catalog.RateLimiterMap
	logger  *slog.Logger
	baseURL string
}

// New creates a Spotify adapter with the default base URL.
func New(limiter *catalog.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates a Spotify adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *catalog.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		logger:  logger.With(slog.String("catalog", catalog.NameSpotify)),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchMetadata fetches the share page for the link and extracts the title
// and artist. Unlike the target-catalog client, a transport failure here is
// a hard error: without source metadata there is nothing to resolve.
func (a *Adapter) FetchMetadata(ctx context.Context, link Link) (*catalog.Metadata, error) {
	if err := a.limiter.Wait(ctx, catalog.NameSpotify); err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameSpotify,
			Cause:   fmt.Errorf("rate limiter: %w", err),
		}
	}

	reqURL := fmt.Sprintf("%s/%s/%s", a.baseURL, link.Type, url.PathEscape(link.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameSpotify,
			Cause:   err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameSpotify, Resource: link.ID}
	default:
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameSpotify,
			Cause:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return nil, &catalog.ErrUpstreamUnavailable{
			Catalog: catalog.NameSpotify,
			Cause:   err,
		}
	}

	meta, err := parsePageTitle(string(body), link.Type)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("metadata resolved",
		slog.String("type", string(link.Type)),
		slog.String("title", meta.Title),
		slog.String("artist", meta.Artist))

	return meta, nil
}

var titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// bySeparators are the " - <kind> by " separators the share page titles use,
// most specific first.
var bySeparators = []string{
	" - song and lyrics by ",
	" - Album by ",
	" - Single by ",
	" - EP by ",
	" by ",
}

// parsePageTitle extracts title and artist from a share page's title tag.
// Tracks and albums are titled "Name - <kind> by Artist | Spotify"; artist
// pages are just "Artist | Spotify". A page without a recognizable separator
// still yields usable metadata with the artist left empty; absence of an
// artist is a valid state, not an error.
func parsePageTitle(page string, t catalog.EntityType) (*catalog.Metadata, error) {
	m := titleTag.FindStringSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("no title tag in share page")
	}
	full := strings.TrimSpace(html.UnescapeString(m[1]))
	full = strings.TrimSuffix(full, " | Spotify")
	if full == "" {
		return nil, fmt.Errorf("empty share page title")
	}

	meta := &catalog.Metadata{Type: t, Title: full}
	if t == catalog.Artist {
		return meta, nil
	}

	for _, sep := range bySeparators {
		if idx := strings.Index(full, sep); idx > 0 {
			meta.Title = full[:idx]
			meta.Artist = full[idx+len(sep):]
			break
		}
	}
	return meta, nil
}
