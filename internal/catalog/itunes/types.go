package itunes

import "github.com/sydlexius/crossfade/internal/catalog"

// resultEnvelope is the standard response wrapper shared by the iTunes
// search and lookup endpoints.
type resultEnvelope struct {
	ResultCount int          `json:"resultCount"`
	Results     []itemResult `json:"results"`
}

// itemResult is a single entry from a search or lookup response. Tracks,
// collections, and artists share one shape with different fields populated;
// wrapperType discriminates between them.
type itemResult struct {
	WrapperType       string `json:"wrapperType"`
	Kind              string `json:"kind,omitempty"`
	ArtistID          int64  `json:"artistId,omitempty"`
	CollectionID      int64  `json:"collectionId,omitempty"`
	TrackID           int64  `json:"trackId,omitempty"`
	ArtistName        string `json:"artistName,omitempty"`
	CollectionName    string `json:"collectionName,omitempty"`
	TrackName         string `json:"trackName,omitempty"`
	ArtistLinkURL     string `json:"artistLinkUrl,omitempty"`
	ArtistViewURL     string `json:"artistViewUrl,omitempty"`
	CollectionViewURL string `json:"collectionViewUrl,omitempty"`
	TrackViewURL      string `json:"trackViewUrl,omitempty"`
}

// toEntry converts an API result into the catalog-neutral entry shape.
// Artist records link via artistLinkUrl on search results and artistViewUrl
// on lookup results; prefer the former when both are present.
func (r itemResult) toEntry() catalog.Entry {
	artistURL := r.ArtistLinkURL
	if artistURL == "" {
		artistURL = r.ArtistViewURL
	}
	return catalog.Entry{
		WrapperType:    r.WrapperType,
		ArtistID:       r.ArtistID,
		ArtistName:     r.ArtistName,
		TrackName:      r.TrackName,
		CollectionName: r.CollectionName,
		TrackURL:       r.TrackViewURL,
		CollectionURL:  r.CollectionViewURL,
		ArtistURL:      artistURL,
	}
}
