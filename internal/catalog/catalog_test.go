package catalog

import (
	"context"
	"testing"
)

func TestEntityTypeValid(t *testing.T) {
	for _, typ := range []EntityType{Track, Album, Artist} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	for _, typ := range []EntityType{"", "playlist", "show"} {
		if typ.Valid() {
			t.Errorf("%q should be invalid", typ)
		}
	}
}

func TestEntryNameAndURL(t *testing.T) {
	e := Entry{
		WrapperType:    "track",
		TrackName:      "Never Gonna Give You Up",
		CollectionName: "Whenever You Need Somebody",
		ArtistName:     "Rick Astley",
		TrackURL:       "https://music.example/t",
		CollectionURL:  "https://music.example/c",
		ArtistURL:      "https://music.example/a",
	}

	tests := []struct {
		typ      EntityType
		wantName string
		wantURL  string
	}{
		{Track, "Never Gonna Give You Up", "https://music.example/t"},
		{Album, "Whenever You Need Somebody", "https://music.example/c"},
		{Artist, "Rick Astley", "https://music.example/a"},
	}
	for _, tt := range tests {
		if got := e.Name(tt.typ); got != tt.wantName {
			t.Errorf("Name(%s) = %q, want %q", tt.typ, got, tt.wantName)
		}
		if got := e.URL(tt.typ); got != tt.wantURL {
			t.Errorf("URL(%s) = %q, want %q", tt.typ, got, tt.wantURL)
		}
	}
}

func TestIsArtistRecord(t *testing.T) {
	if !(Entry{WrapperType: "artist"}).IsArtistRecord() {
		t.Error("artist wrapper should be an artist record")
	}
	if (Entry{WrapperType: "track"}).IsArtistRecord() {
		t.Error("track wrapper should not be an artist record")
	}
}

func TestRateLimiterMapUnknownName(t *testing.T) {
	m := NewRateLimiterMap()
	if err := m.Wait(context.Background(), "unknown"); err != nil {
		t.Errorf("unknown catalog should not block: %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	unavailable := &ErrUpstreamUnavailable{Catalog: NameITunes, Cause: context.DeadlineExceeded}
	if unavailable.Error() == "" || unavailable.Unwrap() != context.DeadlineExceeded {
		t.Error("unexpected ErrUpstreamUnavailable behavior")
	}
	notFound := &ErrNotFound{Catalog: NameSpotify, Resource: "abc"}
	if notFound.Error() == "" {
		t.Error("expected non-empty message")
	}
}
