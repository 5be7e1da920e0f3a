package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sydlexius/crossfade/internal/catalog"
	"github.com/sydlexius/crossfade/internal/catalog/spotify"
	"github.com/sydlexius/crossfade/internal/version"
)

// MetadataFetcher resolves source-catalog metadata for a parsed link.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, link spotify.Link) (*catalog.Metadata, error)
}

// EntryResolver finds the target-catalog entry for source metadata, or nil
// when no plausible match exists.
type EntryResolver interface {
	Resolve(ctx context.Context, t catalog.EntityType, title, artist string) *catalog.Entry
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// resolveResponse is the JSON body returned for format=json requests.
type resolveResponse struct {
	URL    string             `json:"url"`
	Name   string             `json:"name"`
	Artist string             `json:"artist,omitempty"`
	Type   catalog.EntityType `json:"type"`
}

// handleResolve resolves a source-catalog share link into the equivalent
// target-catalog entry. Default response is a redirect to the matched
// entry; format=json returns the entry as JSON. "Could not determine what
// was asked" (bad link, source catalog down) and "could not find a match"
// are kept distinct: 400/502 for the former, 404 for the latter.
func (r *Router) handleResolve(w http.ResponseWriter, req *http.Request) {
	rawURL := req.URL.Query().Get("url")
	if rawURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing url parameter"})
		return
	}

	link, err := spotify.ParseLink(rawURL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported or malformed link"})
		return
	}

	meta, err := r.metadata.FetchMetadata(req.Context(), link)
	if err != nil {
		var notFound *catalog.ErrNotFound
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "source entry not found"})
			return
		}
		r.logger.Error("fetching source metadata",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "source catalog unavailable"})
		return
	}

	entry := r.resolver.Resolve(req.Context(), meta.Type, meta.Title, meta.Artist)
	if entry == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no match found"})
		return
	}

	if req.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, resolveResponse{
			URL:    entry.URL(meta.Type),
			Name:   entry.Name(meta.Type),
			Artist: entry.ArtistName,
			Type:   meta.Type,
		})
		return
	}

	http.Redirect(w, req, entry.URL(meta.Type), http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already written; nothing useful left to do.
		return
	}
}
