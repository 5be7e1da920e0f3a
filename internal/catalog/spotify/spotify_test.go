package spotify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sydlexius/crossfade/internal/catalog"
)

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantType catalog.EntityType
		wantID   string
	}{
		{"track", "https://open.spotify.com/track/4PTG3Z6ehGkBFwjybzWkR8", catalog.Track, "4PTG3Z6ehGkBFwjybzWkR8"},
		{"album", "https://open.spotify.com/album/6XzZ5pg9buDoWXElMRCrWE", catalog.Album, "6XzZ5pg9buDoWXElMRCrWE"},
		{"artist", "https://open.spotify.com/artist/0gxyHStUsqpMadRV0Di1Qt", catalog.Artist, "0gxyHStUsqpMadRV0Di1Qt"},
		{"locale segment", "https://open.spotify.com/intl-fr/track/4PTG3Z6ehGkBFwjybzWkR8", catalog.Track, "4PTG3Z6ehGkBFwjybzWkR8"},
		{"query string", "https://open.spotify.com/track/4PTG3Z6ehGkBFwjybzWkR8?si=abc123", catalog.Track, "4PTG3Z6ehGkBFwjybzWkR8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := ParseLink(tt.url)
			if err != nil {
				t.Fatalf("ParseLink(%q): %v", tt.url, err)
			}
			if link.Type != tt.wantType || link.ID != tt.wantID {
				t.Errorf("got %+v, want type %s id %s", link, tt.wantType, tt.wantID)
			}
		})
	}
}

func TestParseLinkRejects(t *testing.T) {
	urls := []string{
		"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M",
		"https://open.spotify.com/show/4rOoJ6Egrf8K2IrywzwOMk",
		"https://open.spotify.com/track/",
		"https://open.spotify.com/",
		"https://example.com/track/4PTG3Z6ehGkBFwjybzWkR8",
	}
	for _, u := range urls {
		if _, err := ParseLink(u); err == nil {
			t.Errorf("ParseLink(%q): expected error", u)
		}
	}
	var unsupported *ErrUnsupportedLink
	_, err := ParseLink("https://open.spotify.com/playlist/xyz")
	if !errors.As(err, &unsupported) {
		t.Errorf("expected ErrUnsupportedLink, got %v", err)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")

		switch r.URL.Path {
		case "/track/4PTG3Z6ehGkBFwjybzWkR8":
			w.Write([]byte(`<html><head><title>Never Gonna Give You Up - song and lyrics by Rick Astley | Spotify</title></head></html>`))
		case "/album/6XzZ5pg9buDoWXElMRCrWE":
			w.Write([]byte(`<html><head><title>Whenever You Need Somebody - Album by Rick Astley | Spotify</title></head></html>`))
		case "/artist/0gxyHStUsqpMadRV0Di1Qt":
			w.Write([]byte(`<html><head><title>Rick Astley | Spotify</title></head></html>`))
		case "/track/escaped":
			w.Write([]byte(`<html><head><title>Don&#39;t Stop Me Now - song and lyrics by Queen | Spotify</title></head></html>`))
		case "/track/untitled":
			w.Write([]byte(`<html><head></head><body>nothing here</body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	limiter := catalog.NewRateLimiterMap()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewWithBaseURL(limiter, logger, baseURL)
}

func TestFetchMetadataTrack(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	meta, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Track, ID: "4PTG3Z6ehGkBFwjybzWkR8"})
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Never Gonna Give You Up" {
		t.Errorf("unexpected title %q", meta.Title)
	}
	if meta.Artist != "Rick Astley" {
		t.Errorf("unexpected artist %q", meta.Artist)
	}
}

func TestFetchMetadataAlbum(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	meta, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Album, ID: "6XzZ5pg9buDoWXElMRCrWE"})
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Whenever You Need Somebody" || meta.Artist != "Rick Astley" {
		t.Errorf("got %+v", meta)
	}
}

func TestFetchMetadataArtist(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	meta, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Artist, ID: "0gxyHStUsqpMadRV0Di1Qt"})
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Rick Astley" {
		t.Errorf("unexpected title %q", meta.Title)
	}
	if meta.Artist != "" {
		t.Errorf("expected empty artist for artist page, got %q", meta.Artist)
	}
}

func TestFetchMetadataUnescapesEntities(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	meta, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Track, ID: "escaped"})
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Don't Stop Me Now" || meta.Artist != "Queen" {
		t.Errorf("got %+v", meta)
	}
}

func TestFetchMetadataNotFound(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	var notFound *catalog.ErrNotFound
	_, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Track, ID: "missing"})
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchMetadataNoTitleTag(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	if _, err := a.FetchMetadata(context.Background(), Link{Type: catalog.Track, ID: "untitled"}); err == nil {
		t.Error("expected error for page without title tag")
	}
}

func TestParsePageTitleWithoutSeparator(t *testing.T) {
	meta, err := parsePageTitle(`<title>Some Odd Page | Spotify</title>`, catalog.Track)
	if err != nil {
		t.Fatalf("parsePageTitle: %v", err)
	}
	if meta.Title != "Some Odd Page" {
		t.Errorf("unexpected title %q", meta.Title)
	}
	if meta.Artist != "" {
		t.Errorf("expected empty artist, got %q", meta.Artist)
	}
}
