package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// GetArtistTopTracks returns up to limit of the artist's top tracks in market.
// The API itself never returns more than 10.
func (c *Client) GetArtistTopTracks(ctx context.Context, artistID, market string, limit int) ([]ports.RawTrack, error) {
	if artistID == "" {
		return nil, fmt.Errorf("spotify adapter: top tracks: empty artist id")
	}
	params := url.Values{}
	if market != "" {
		params.Set("market", market)
	}

	var body topTracksResponse
	path := "/artists/" + url.PathEscape(artistID) + "/top-tracks"
	if err := c.getJSON(ctx, "top_tracks", path, params, &body); err != nil {
		return nil, err
	}
	return mapTracksToRaw(body.Tracks, limit), nil
}

// GetRelatedArtists returns the artists the catalog considers similar, in API order.
func (c *Client) GetRelatedArtists(ctx context.Context, artistID string) ([]ports.RawArtist, error) {
	if artistID == "" {
		return nil, fmt.Errorf("spotify adapter: related artists: empty artist id")
	}

	var body relatedArtistsResponse
	path := "/artists/" + url.PathEscape(artistID) + "/related-artists"
	if err := c.getJSON(ctx, "related_artists", path, nil, &body); err != nil {
		return nil, err
	}

	artists := make([]ports.RawArtist, 0, len(body.Artists))
	for _, a := range body.Artists {
		artists = append(artists, mapArtistToRaw(a))
	}
	return artists, nil
}
