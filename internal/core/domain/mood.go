package domain

import (
	"maps"
	"slices"
	"strings"
)

// Mood is one of the fixed moods supported by mood-based recommendations.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodChill   Mood = "chill"
	MoodWorkout Mood = "workout"
	MoodSad     Mood = "sad"
	MoodParty   Mood = "party"
)

// PartialFeatures maps a subset of similarity feature names to target values.
type PartialFeatures map[string]float64

// MoodProfile describes how a mood is turned into a catalog query.
type MoodProfile struct {
	Label          Mood            `json:"label"`
	TargetFeatures PartialFeatures `json:"target_features"`
	SeedGenres     []string        `json:"seed_genres"`
	FallbackQuery  string          `json:"fallback_query"`
}

var moodProfiles = map[Mood]MoodProfile{
	MoodHappy: {
		Label:          MoodHappy,
		TargetFeatures: PartialFeatures{"valence": 0.8, "energy": 0.7, "danceability": 0.7},
		SeedGenres:     []string{"happy"},
		FallbackQuery:  "happy upbeat pop dance",
	},
	MoodChill: {
		Label:          MoodChill,
		TargetFeatures: PartialFeatures{"valence": 0.5, "energy": 0.3, "acousticness": 0.6},
		SeedGenres:     []string{"chill"},
		FallbackQuery:  "chill relax ambient calm",
	},
	MoodWorkout: {
		Label:          MoodWorkout,
		TargetFeatures: PartialFeatures{"energy": 0.85, "tempo": 140, "danceability": 0.7},
		SeedGenres:     []string{"rock", "electronic"},
		FallbackQuery:  "workout energy gym motivation",
	},
	MoodSad: {
		Label:          MoodSad,
		TargetFeatures: PartialFeatures{"valence": 0.2, "energy": 0.3, "acousticness": 0.5},
		SeedGenres:     []string{"sad"},
		FallbackQuery:  "sad emotional melancholy",
	},
	MoodParty: {
		Label:          MoodParty,
		TargetFeatures: PartialFeatures{"danceability": 0.85, "energy": 0.8, "valence": 0.7},
		SeedGenres:     []string{"party"},
		FallbackQuery:  "party dance club edm",
	},
}

// Moods returns the supported moods in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodChill, MoodWorkout, MoodSad, MoodParty}
}

// ParseMood validates a mood label. Matching ignores case and surrounding space.
func ParseMood(label string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(label)))
	if _, ok := moodProfiles[m]; !ok {
		return "", NewError(InvalidMood, "parse mood", label, nil)
	}
	return m, nil
}

// Profile returns a copy of the mood's profile.
func (m Mood) Profile() (MoodProfile, bool) {
	p, ok := moodProfiles[m]
	if !ok {
		return MoodProfile{}, false
	}
	p.TargetFeatures = maps.Clone(p.TargetFeatures)
	p.SeedGenres = slices.Clone(p.SeedGenres)
	return p, true
}
