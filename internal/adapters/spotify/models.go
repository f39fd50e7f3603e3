package spotify

// spotifyTrack is the track object shared by the search and top-tracks endpoints.
type spotifyTrack struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []spotifyArtist   `json:"artists"`
	Album        spotifyAlbum      `json:"album"`
	Popularity   int               `json:"popularity"`
	DurationMs   int               `json:"duration_ms"`
	PreviewURL   *string           `json:"preview_url"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type spotifyAlbum struct {
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Images      []spotifyImage `json:"images"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// spotifyArtist is a simplified artist inside a track, or a full artist
// object from related-artists, which adds genres and popularity.
type spotifyArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	Popularity int      `json:"popularity,omitempty"`
}

// spotifyAudioFeatures uses pointers so absent fields stay distinguishable from zero.
type spotifyAudioFeatures struct {
	ID               string   `json:"id"`
	Danceability     *float64 `json:"danceability"`
	Energy           *float64 `json:"energy"`
	Valence          *float64 `json:"valence"`
	Tempo            *float64 `json:"tempo"`
	Acousticness     *float64 `json:"acousticness"`
	Liveness         *float64 `json:"liveness"`
	Instrumentalness *float64 `json:"instrumentalness"`
	Loudness         *float64 `json:"loudness"`
	Speechiness      *float64 `json:"speechiness"`
	Key              *int     `json:"key"`
	Mode             *int     `json:"mode"`
}

type searchResponse struct {
	Tracks struct {
		Items []*spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type topTracksResponse struct {
	Tracks []*spotifyTrack `json:"tracks"`
}

type relatedArtistsResponse struct {
	Artists []spotifyArtist `json:"artists"`
}
