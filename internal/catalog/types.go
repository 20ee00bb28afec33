// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Fetcher retrieves one page of discover results for a filter.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Discover(ctx context.Context, filter FilterSpec, page int) (*Page, error)
}

// Movie is a single catalog entry. Only ID, Popularity and VoteAverage
// influence selection; the remaining fields are passed through to callers.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
}

// Page is one page of discover results.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// FilterSpec is a declarative discover query. Zero values mean "unset"
// and are omitted from the rendered parameters.
type FilterSpec struct {
	SortBy         string            `koanf:"sort_by" json:"sort_by,omitempty"`
	MinRating      float64           `koanf:"min_rating" json:"min_rating,omitempty" validate:"gte=0,lte=10"`
	MaxRating      float64           `koanf:"max_rating" json:"max_rating,omitempty" validate:"gte=0,lte=10"`
	MinVoteCount   int               `koanf:"min_vote_count" json:"min_vote_count,omitempty" validate:"gte=0"`
	MaxVoteCount   int               `koanf:"max_vote_count" json:"max_vote_count,omitempty" validate:"gte=0"`
	Genres         []int             `koanf:"genres" json:"genres,omitempty"`
	ReleasedAfter  string            `koanf:"released_after" json:"released_after,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReleasedBefore string            `koanf:"released_before" json:"released_before,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReleaseTypes   []int             `koanf:"release_types" json:"release_types,omitempty"`
	Language       string            `koanf:"language" json:"language,omitempty"`
	Extra          map[string]string `koanf:"extra" json:"extra,omitempty"`
}

// Params renders the filter as discover query parameters. Genres and
// release types are OR-ed (pipe separated).
func (f FilterSpec) Params() url.Values {
	v := url.Values{}
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
	if f.MinRating > 0 {
		v.Set("vote_average.gte", formatFloat(f.MinRating))
	}
	if f.MaxRating > 0 {
		v.Set("vote_average.lte", formatFloat(f.MaxRating))
	}
	if f.MinVoteCount > 0 {
		v.Set("vote_count.gte", strconv.Itoa(f.MinVoteCount))
	}
	if f.MaxVoteCount > 0 {
		v.Set("vote_count.lte", strconv.Itoa(f.MaxVoteCount))
	}
	if len(f.Genres) > 0 {
		v.Set("with_genres", joinInts(f.Genres, "|"))
	}
	if f.ReleasedAfter != "" {
		v.Set("primary_release_date.gte", f.ReleasedAfter)
	}
	if f.ReleasedBefore != "" {
		v.Set("primary_release_date.lte", f.ReleasedBefore)
	}
	if len(f.ReleaseTypes) > 0 {
		v.Set("with_release_type", joinInts(f.ReleaseTypes, "|"))
	}
	if f.Language != "" {
		v.Set("with_original_language", f.Language)
	}
	for k, val := range f.Extra {
		v.Set(k, val)
	}
	return v
}

// Clone returns a deep copy so callers can mutate slices and maps freely.
func (f FilterSpec) Clone() FilterSpec {
	out := f
	if f.Genres != nil {
		out.Genres = append([]int(nil), f.Genres...)
	}
	if f.ReleaseTypes != nil {
		out.ReleaseTypes = append([]int(nil), f.ReleaseTypes...)
	}
	if f.Extra != nil {
		out.Extra = make(map[string]string, len(f.Extra))
		for k, v := range f.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// String returns the encoded query, which is stable because url.Values
// encodes keys in sorted order.
func (f FilterSpec) String() string {
	return f.Params().Encode()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinInts(vals []int, sep string) string {
	parts := make([]string, len(vals))
	for i, n := range vals {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
