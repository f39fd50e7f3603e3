package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// GetAudioFeatures fetches the audio analysis of one track. A 404, a 403
// (the endpoint is closed to newer apps) or a null body mean the analysis is
// absent and yield nil, nil.
func (c *Client) GetAudioFeatures(ctx context.Context, trackID string) (*ports.RawFeatures, error) {
	var body *spotifyAudioFeatures
	err := c.getJSON(ctx, "audio_features", "/audio-features/"+url.PathEscape(trackID), nil, &body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusNotFound || se.Code == http.StatusForbidden) {
			c.log.Debug().Str("track_id", trackID).Int("status", se.Code).Msg("audio features unavailable")
			return nil, nil
		}
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	return mapFeaturesToRaw(*body), nil
}
