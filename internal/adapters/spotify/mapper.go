package spotify

import (
	"github.com/ewilliams-labs/soundalike/internal/core/ports"
)

// mapTrackToRaw converts a wire track to the catalog port shape. Validation
// is left to the normalizer; null items come through as nil and are skipped.
func mapTrackToRaw(st spotifyTrack) ports.RawTrack {
	artists := make([]ports.RawArtistRef, 0, len(st.Artists))
	for _, a := range st.Artists {
		artists = append(artists, ports.RawArtistRef{ID: a.ID, Name: a.Name})
	}

	images := make([]ports.RawImage, 0, len(st.Album.Images))
	for _, img := range st.Album.Images {
		images = append(images, ports.RawImage{URL: img.URL, Height: img.Height, Width: img.Width})
	}

	raw := ports.RawTrack{
		ID:      st.ID,
		Name:    st.Name,
		Artists: artists,
		Album: ports.RawAlbum{
			Name:        st.Album.Name,
			ReleaseDate: st.Album.ReleaseDate,
			Images:      images,
		},
		Popularity:   st.Popularity,
		DurationMs:   st.DurationMs,
		ExternalURLs: st.ExternalURLs,
	}
	if st.PreviewURL != nil {
		raw.PreviewURL = *st.PreviewURL
	}
	return raw
}

func mapTracksToRaw(items []*spotifyTrack, limit int) []ports.RawTrack {
	out := make([]ports.RawTrack, 0, len(items))
	for _, st := range items {
		if st == nil {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, mapTrackToRaw(*st))
	}
	return out
}

func mapFeaturesToRaw(f spotifyAudioFeatures) *ports.RawFeatures {
	return &ports.RawFeatures{
		Danceability:     f.Danceability,
		Energy:           f.Energy,
		Valence:          f.Valence,
		Tempo:            f.Tempo,
		Acousticness:     f.Acousticness,
		Liveness:         f.Liveness,
		Instrumentalness: f.Instrumentalness,
		Loudness:         f.Loudness,
		Speechiness:      f.Speechiness,
		Key:              f.Key,
		Mode:             f.Mode,
	}
}

func mapArtistToRaw(a spotifyArtist) ports.RawArtist {
	return ports.RawArtist{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     append([]string(nil), a.Genres...),
		Popularity: a.Popularity,
	}
}
