// Package catalog defines the shared types for talking to music catalogs:
// the closed set of entity types, the candidate entry shape returned by
// target-catalog lookups, and the error taxonomy adapters use internally.
package catalog

import (
	"fmt"
	"time"
)

// EntityType is the closed classification of what is being resolved.
type EntityType string

// The three supported entity types. Playlists and other batch identifiers
// are deliberately unsupported.
const (
	Track  EntityType = "track"
	Album  EntityType = "album"
	Artist EntityType = "artist"
)

// Valid reports whether t is one of the three known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case Track, Album, Artist:
		return true
	}
	return false
}

// Entry is one candidate from a target-catalog search or listing call.
// Entries are immutable once fetched; the pipeline only filters and
// compares them.
type Entry struct {
	WrapperType    string `json:"wrapper_type"`
	ArtistID       int64  `json:"artist_id,omitempty"`
	ArtistName     string `json:"artist_name,omitempty"`
	TrackName      string `json:"track_name,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
	TrackURL       string `json:"track_url,omitempty"`
	CollectionURL  string `json:"collection_url,omitempty"`
	ArtistURL      string `json:"artist_url,omitempty"`
}

// IsArtistRecord reports whether the entry is an artist record rather than
// a track or collection. Catalog listings include one such self-referential
// record which the client filters out.
func (e Entry) IsArtistRecord() bool {
	return e.WrapperType == "artist"
}

// Name returns the type-appropriate display name for the entry: the track
// name for tracks, the collection name for albums, the artist name for
// artists. Keeping the field selection on the closed type set keeps the
// selector exhaustive over the three variants.
func (e Entry) Name(t EntityType) string {
	switch t {
	case Track:
		return e.TrackName
	case Album:
		return e.CollectionName
	case Artist:
		return e.ArtistName
	}
	return ""
}

// URL returns the canonical public URL for the entry given the entity type
// being resolved.
func (e Entry) URL(t EntityType) string {
	switch t {
	case Track:
		return e.TrackURL
	case Album:
		return e.CollectionURL
	case Artist:
		return e.ArtistURL
	}
	return ""
}

// Metadata is the loosely-structured description of the source-catalog
// entry, produced once per request and immutable thereafter. An empty
// Artist is a valid, expected state.
type Metadata struct {
	Title  string     `json:"title"`
	Artist string     `json:"artist,omitempty"`
	Type   EntityType `json:"type"`
}

// ErrUpstreamUnavailable indicates a transient transport failure against a
// catalog endpoint (network error, rate limiting, server error).
type ErrUpstreamUnavailable struct {
	Catalog    string
	Cause      error
	RetryAfter time.Duration
}

func (e *ErrUpstreamUnavailable) Error() string {
	return fmt.Sprintf("catalog %s unavailable: %v", e.Catalog, e.Cause)
}

func (e *ErrUpstreamUnavailable) Unwrap() error { return e.Cause }

// ErrNotFound indicates the catalog has no data for the requested resource.
type ErrNotFound struct {
	Catalog  string
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("catalog %s: %s not found", e.Catalog, e.Resource)
}
