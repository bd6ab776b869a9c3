// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"strconv"
	"strings"
)

// DefaultImageBaseURL is TMDB's image CDN.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/"

// Movie represents TMDB movie details.
type Movie struct {
	ID           int64   `json:"id"`
	IMDBID       string  `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline,omitempty"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"` // "2024-03-01"
	PosterPath   string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime"` // minutes
	Genres       []Genre `json:"genres"`
}

// MovieSummary is a movie as it appears in search, discover and category listings.
type MovieSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// Page is one page of a paginated listing.
type Page struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is a curated TMDB listing.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
	CategoryNowPlaying Category = "now_playing"
)

// Categories lists every supported category.
var Categories = []Category{CategoryPopular, CategoryTopRated, CategoryUpcoming, CategoryNowPlaying}

// Valid reports whether c is a supported category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DiscoverParams filters /discover/movie. Zero values are omitted.
type DiscoverParams struct {
	GenreIDs  []int
	Year      int
	MinRating float64
	SortBy    string // e.g. "popularity.desc", "vote_average.desc"
	Page      int
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// Year extracts the year from ReleaseDate.
func (m *MovieSummary) Year() int {
	return yearOf(m.ReleaseDate)
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (m *Movie) PosterURL(size string) string {
	return ImageURL(DefaultImageBaseURL, size, m.PosterPath)
}

// BackdropURL returns the full backdrop image URL.
func (m *Movie) BackdropURL(size string) string {
	return ImageURL(DefaultImageBaseURL, size, m.BackdropPath)
}

// ImageURL joins an image base, size and TMDB path. An empty path yields "".
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + size + path
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
