package store

import "github.com/vmunix/marquee/internal/api"

// Stats are the profile aggregates derived from the library.
type Stats struct {
	TotalFavorites int     `json:"totalFavorites"`
	TotalWatched   int     `json:"totalWatched"`
	RatedCount     int     `json:"ratedCount"`
	AverageRating  float64 `json:"averageRating"` // over rated watched movies only; 0 if none
}

// ComputeStats derives Stats from the current collections. It is the only
// place the aggregates are calculated.
func ComputeStats(favorites []api.Favorite, watched []api.WatchedMovie) Stats {
	s := Stats{
		TotalFavorites: len(favorites),
		TotalWatched:   len(watched),
	}
	var sum float64
	for _, w := range watched {
		if w.Rating == nil {
			continue
		}
		sum += *w.Rating
		s.RatedCount++
	}
	if s.RatedCount > 0 {
		s.AverageRating = sum / float64(s.RatedCount)
	}
	return s
}
