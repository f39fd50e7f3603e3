package domain

// Default feature values used when the catalog has no analysis for a track.
const (
	DefaultUnitFeature = 0.5
	DefaultTempo       = 120.0
	DefaultLoudness    = -10.0
	DefaultKey         = 0
	DefaultMode        = 1
)

// Track represents a musical track in the domain layer.
type Track struct {
	ID          string
	Name        string
	Artist      string // display string, multiple artists joined with ", "
	Album       string
	ImageURL    string // optional
	PreviewURL  string // optional
	Popularity  int    // 0-100
	ReleaseDate string // "YYYY", "YYYY-MM" or "YYYY-MM-DD"
	DurationMs  int
	ExternalURL string
	ArtistIDs   []string // first entry is the primary artist
	Features    AudioFeatures
}

// PrimaryArtistID returns the first artist ID, or "" when the track has none.
func (t Track) PrimaryArtistID() string {
	if len(t.ArtistIDs) == 0 {
		return ""
	}
	return t.ArtistIDs[0]
}

// AudioFeatures holds the catalog's audio analysis for a track.
type AudioFeatures struct {
	Danceability     float64
	Energy           float64
	Valence          float64
	Tempo            float64
	Acousticness     float64
	Liveness         float64
	Instrumentalness float64
	Loudness         float64
	Speechiness      float64
	Key              int
	Mode             int
}

// DefaultFeatures returns the midpoint vector substituted for missing analysis.
func DefaultFeatures() AudioFeatures {
	return AudioFeatures{
		Danceability:     DefaultUnitFeature,
		Energy:           DefaultUnitFeature,
		Valence:          DefaultUnitFeature,
		Tempo:            DefaultTempo,
		Acousticness:     DefaultUnitFeature,
		Liveness:         DefaultUnitFeature,
		Instrumentalness: DefaultUnitFeature,
		Loudness:         DefaultLoudness,
		Speechiness:      DefaultUnitFeature,
		Key:              DefaultKey,
		Mode:             DefaultMode,
	}
}

// SimilarityFeatures lists, in column order, the features compared by the ranker.
var SimilarityFeatures = []string{
	"danceability",
	"energy",
	"valence",
	"tempo",
	"acousticness",
	"liveness",
	"instrumentalness",
	"loudness",
	"speechiness",
}

// Vector returns the similarity features in SimilarityFeatures order.
func (f AudioFeatures) Vector() []float64 {
	return []float64{
		f.Danceability,
		f.Energy,
		f.Valence,
		f.Tempo,
		f.Acousticness,
		f.Liveness,
		f.Instrumentalness,
		f.Loudness,
		f.Speechiness,
	}
}

// Get returns a similarity feature by name.
func (f AudioFeatures) Get(name string) (float64, bool) {
	switch name {
	case "danceability":
		return f.Danceability, true
	case "energy":
		return f.Energy, true
	case "valence":
		return f.Valence, true
	case "tempo":
		return f.Tempo, true
	case "acousticness":
		return f.Acousticness, true
	case "liveness":
		return f.Liveness, true
	case "instrumentalness":
		return f.Instrumentalness, true
	case "loudness":
		return f.Loudness, true
	case "speechiness":
		return f.Speechiness, true
	default:
		return 0, false
	}
}
