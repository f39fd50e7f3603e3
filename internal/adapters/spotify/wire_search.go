package spotify

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// Spotify rejects search limits outside 1..50.
const maxSearchLimit = 50

// SearchTracks runs a free-text track search and returns up to limit results in API order.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]ports.RawTrack, error) {
	limit = min(max(limit, 1), maxSearchLimit)

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	c.log.Debug().Str("query", query).Int("limit", limit).Msg("search request")

	var body searchResponse
	if err := c.getJSON(ctx, "search", "/search", params, &body); err != nil {
		return nil, err
	}
	return mapTracksToRaw(body.Tracks.Items, limit), nil
}
