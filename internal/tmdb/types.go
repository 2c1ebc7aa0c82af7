// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package tmdb

import "github.com/tomtom215/anchorr/internal/models"

// SearchResult is one entry of /search/multi. Person results share the
// endpoint and are filtered out by callers through Kind.
type SearchResult struct {
	ID           int    `json:"id"`
	MediaType    string `json:"media_type"`
	Title        string `json:"title,omitempty"` // movies
	Name         string `json:"name,omitempty"`  // tv
	ReleaseDate  string `json:"release_date,omitempty"`
	FirstAirDate string `json:"first_air_date,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
	Overview     string `json:"overview,omitempty"`
}

// Kind returns the media kind, or an error for people and unknown types.
func (r *SearchResult) Kind() (models.MediaKind, error) {
	return models.ParseMediaKind(r.MediaType)
}

// DisplayTitle returns the movie title or the show name.
func (r *SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Year returns the four-digit release or first-air year, or "".
func (r *SearchResult) Year() string {
	return yearOf(r.ReleaseDate, r.FirstAirDate)
}

type searchResponse struct {
	Page    int            `json:"page"`
	Results []SearchResult `json:"results"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExternalIDs holds ids on other services.
type ExternalIDs struct {
	IMDbID string `json:"imdb_id,omitempty"`
	TVDBID int    `json:"tvdb_id,omitempty"`
}

// Image is one entry of the images.backdrops list.
type Image struct {
	FilePath string  `json:"file_path"`
	ISO639_1 *string `json:"iso_639_1"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// Images is the append_to_response=images block.
type Images struct {
	Backdrops []Image `json:"backdrops"`
}

// Details is a movie or TV show fetched with external_ids and images appended.
type Details struct {
	ID              int         `json:"id"`
	Title           string      `json:"title,omitempty"`
	Name            string      `json:"name,omitempty"`
	ReleaseDate     string      `json:"release_date,omitempty"`
	FirstAirDate    string      `json:"first_air_date,omitempty"`
	Overview        string      `json:"overview,omitempty"`
	Runtime         int         `json:"runtime,omitempty"`
	NumberOfSeasons int         `json:"number_of_seasons,omitempty"`
	Genres          []Genre     `json:"genres,omitempty"`
	BackdropPath    string      `json:"backdrop_path,omitempty"`
	PosterPath      string      `json:"poster_path,omitempty"`
	ExternalIDs     ExternalIDs `json:"external_ids"`
	Images          Images      `json:"images"`
}

// DisplayTitle returns the movie title or the show name.
func (d *Details) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Year returns the four-digit release or first-air year, or "".
func (d *Details) Year() string {
	return yearOf(d.ReleaseDate, d.FirstAirDate)
}

// IMDbID returns the IMDb id, or "".
func (d *Details) IMDbID() string {
	return d.ExternalIDs.IMDbID
}

// GenreNames returns genre names in TMDB order.
func (d *Details) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// BestBackdrop returns the first English backdrop, else the primary
// backdrop_path. It returns "" when neither exists.
func (d *Details) BestBackdrop() string {
	for _, b := range d.Images.Backdrops {
		if b.ISO639_1 != nil && *b.ISO639_1 == "en" && b.FilePath != "" {
			return b.FilePath
		}
	}
	return d.BackdropPath
}

func yearOf(dates ...string) string {
	for _, d := range dates {
		if len(d) >= 4 {
			return d[:4]
		}
	}
	return ""
}
