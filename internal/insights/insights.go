// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/screenpick/internal/catalog"
	"github.com/tomtom215/screenpick/internal/ratings"
	"github.com/tomtom215/screenpick/internal/recommend"
)

// SnapshotProvider returns the current data snapshot, or nil before the
// first load. *recommend.Engine satisfies it.
type SnapshotProvider interface {
	Snapshot() *recommend.Snapshot
}

// Config controls insight queries.
type Config struct {
	// MinRatings is the minimum number of ratings a movie needs to appear
	// in TopRated.
	MinRatings int `json:"min_ratings"`

	// DefaultLimit applies when a query sets no limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps any requested limit.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the default insight settings.
func DefaultConfig() Config {
	return Config{
		MinRatings:   1,
		DefaultLimit: 20,
		MaxLimit:     500,
	}
}

// SortOrder selects the TopRated ordering.
type SortOrder string

const (
	// SortByRating orders by average rating, then rating count.
	SortByRating SortOrder = "rating"

	// SortByCount orders by rating count, then average rating.
	SortByCount SortOrder = "count"
)

// ParseSort parses a sort name. The empty string is SortByRating.
func ParseSort(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByRating:
		return SortByRating, nil
	case SortByCount:
		return SortByCount, nil
	default:
		return "", fmt.Errorf("sort must be rating or count, got %q", s)
	}
}

// Query selects movies by genre and, for TopRated, release year.
type Query struct {
	Genres []string
	Match  catalog.Match
	Limit  int

	// Year restricts TopRated to one release year; 0 means any year.
	Year int

	// Sort is the TopRated order; empty means SortByRating.
	Sort SortOrder
}

// RatedMovie is a TopRated row.
type RatedMovie struct {
	MovieID     int      `json:"movie_id"`
	Title       string   `json:"title"`
	Year        int      `json:"year,omitempty"`
	Genres      []string `json:"genres"`
	RatingCount int      `json:"rating_count"`
	AvgRating   float64  `json:"avg_rating"`
}

// YearCount is the number of matching releases in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// GenreShare is one slice of the genre distribution.
type GenreShare struct {
	Genre      string  `json:"genre"`
	Count      int     `json:"count"`
	Proportion float64 `json:"proportion"`
}

// Service answers catalog analytics questions against the engine's
// current snapshot. It holds no state of its own.
type Service struct {
	provider SnapshotProvider
	cfg      Config
}

// NewService creates an insights service. Zero config fields fall back to
// DefaultConfig values.
func NewService(provider SnapshotProvider, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.MinRatings <= 0 {
		cfg.MinRatings = def.MinRatings
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	return &Service{provider: provider, cfg: cfg}
}

func (s *Service) snapshot() (*recommend.Snapshot, error) {
	snap := s.provider.Snapshot()
	if snap == nil {
		return nil, recommend.ErrNotReady
	}
	return snap, nil
}

func (s *Service) limit(requested int) int {
	if requested <= 0 {
		return s.cfg.DefaultLimit
	}
	if requested > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return requested
}

// Genres returns the sorted distinct genres of the catalog.
func (s *Service) Genres() ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Catalog.Genres(), nil
}

// TopRated returns matching movies with at least MinRatings ratings.
// SortByRating orders by average rating desc, rating count desc, then
// movie ID asc; SortByCount swaps the first two keys.
func (s *Service) TopRated(q Query) ([]RatedMovie, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	pred, err := snap.Catalog.GenreFilter(q.Genres, q.Match)
	if err != nil {
		return nil, err
	}

	var rows []RatedMovie
	for _, m := range snap.Catalog.Filter(pred) {
		if q.Year != 0 && m.Year != q.Year {
			continue
		}
		st := snap.Ratings.Stats(m.ID)
		if st.Count < s.cfg.MinRatings {
			continue
		}
		rows = append(rows, RatedMovie{
			MovieID:     m.ID,
			Title:       m.Title,
			Year:        m.Year,
			Genres:      m.Genres,
			RatingCount: st.Count,
			AvgRating:   st.Average,
		})
	}

	byCount := q.Sort == SortByCount
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if byCount && a.RatingCount != b.RatingCount {
			return a.RatingCount > b.RatingCount
		}
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		if a.RatingCount != b.RatingCount {
			return a.RatingCount > b.RatingCount
		}
		return a.MovieID < b.MovieID
	})

	if n := s.limit(q.Limit); len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// ReleasesByYear counts matching movies per release year in ascending
// year order. Movies without a known year are skipped. Limit, Year and
// Sort are ignored.
func (s *Service) ReleasesByYear(q Query) ([]YearCount, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	pred, err := snap.Catalog.GenreFilter(q.Genres, q.Match)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, m := range snap.Catalog.Filter(pred) {
		if m.Year == 0 {
			continue
		}
		counts[m.Year]++
	}

	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// GenreShares returns each genre's movie count and its proportion of all
// genre assignments, ordered by count desc then name asc.
func (s *Service) GenreShares() ([]GenreShare, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	total := 0
	for _, m := range snap.Catalog.Movies() {
		for _, g := range m.Genres {
			counts[g]++
			total++
		}
	}

	out := make([]GenreShare, 0, len(counts))
	for g, c := range counts {
		out = append(out, GenreShare{Genre: g, Count: c, Proportion: float64(c) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out, nil
}

// Summary describes the loaded snapshot.
type Summary struct {
	SnapshotVersion int64 `json:"snapshot_version"`
	Movies          int   `json:"movies"`
	Ratings         int   `json:"ratings"`
	Users           int   `json:"users"`
	Genres          int   `json:"genres"`
}

// Summary returns counts for the current snapshot.
func (s *Service) Summary() (*Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &Summary{
		SnapshotVersion: snap.Version,
		Movies:          snap.Catalog.Len(),
		Ratings:         snap.Ratings.Len(),
		Users:           len(snap.Ratings.UserIDs()),
		Genres:          len(snap.Catalog.Genres()),
	}, nil
}

// MovieDetail is a single movie with its rating statistics.
type MovieDetail struct {
	MovieID int           `json:"movie_id"`
	Title   string        `json:"title"`
	Year    int           `json:"year,omitempty"`
	Genres  []string      `json:"genres"`
	Tags    []string      `json:"tags"`
	Ratings ratings.Stats `json:"ratings"`
}

// MovieDetail looks a movie up by ID. An unknown ID is reported as
// *recommend.UnknownMovieError.
func (s *Service) MovieDetail(id int) (*MovieDetail, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	m, ok := snap.Catalog.ByID(id)
	if !ok {
		return nil, &recommend.UnknownMovieError{ID: id}
	}

	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return &MovieDetail{
		MovieID: m.ID,
		Title:   m.Title,
		Year:    m.Year,
		Genres:  m.Genres,
		Tags:    tags,
		Ratings: snap.Ratings.Stats(m.ID),
	}, nil
}
