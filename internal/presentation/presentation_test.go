// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package presentation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/enrichment"
	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/omdb"
	"github.com/tomtom215/anchorr/internal/tmdb"
)

func TestMinutesToHhMm(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{148, "2h 28m"},
		{45, "0h 45m"},
		{60, "1h 0m"},
		{0, "N/A"},
		{-5, "N/A"},
	}
	for _, tt := range tests {
		if got := MinutesToHhMm(tt.in); got != tt.want {
			t.Errorf("MinutesToHhMm(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		hex      string
		fallback string
		want     int
	}{
		{"valid", "#ef9f76", "#000000", 0xef9f76},
		{"no hash", "a6d189", "#000000", 0xa6d189},
		{"invalid falls back", "#zzzzzz", "#cba6f7", 0xcba6f7},
		{"empty falls back", "", "#cba6f7", 0xcba6f7},
		{"short falls back", "#fff", "#cba6f7", 0xcba6f7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseColor(tt.hex, tt.fallback); got != tt.want {
				t.Errorf("ParseColor(%q) = %#x, want %#x", tt.hex, got, tt.want)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[string]string{"8.8": "8.8/10", "": "N/A", "N/A": "N/A"}
	for in, want := range tests {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%q) = %q, want %q", in, got, want)
		}
	}
}

func fieldValue(t *testing.T, e *discordgo.MessageEmbed, name string) string {
	t.Helper()
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found in %+v", name, e.Fields)
	return ""
}

func movieResult() *enrichment.Result {
	return &enrichment.Result{
		Ref: models.MediaReference{ExternalID: "27205", Kind: models.MediaKindMovie},
		Details: &tmdb.Details{
			Title:       "Inception",
			ReleaseDate: "2010-07-15",
			Overview:    "A thief who steals corporate secrets.",
			Runtime:     148,
			Genres:      []tmdb.Genre{{Name: "Action"}, {Name: "Science Fiction"}},
			ExternalIDs: tmdb.ExternalIDs{IMDbID: "tt1375666"},
		},
		OMDb:     &omdb.Title{Director: "Christopher Nolan", IMDbRating: "8.8"},
		Backdrop: "/en.jpg",
	}
}

func TestMediaEmbedMovie(t *testing.T) {
	e := MediaEmbed(movieResult(), StatusSearch, nil)

	if e.Title != "Inception (2010)" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.URL != "https://www.imdb.com/title/tt1375666/" {
		t.Errorf("URL = %q", e.URL)
	}
	if e.Author.Name != "🎬 Movie Found" {
		t.Errorf("Author = %q", e.Author.Name)
	}
	if e.Color != 0xef9f76 {
		t.Errorf("Color = %#x, want default search color", e.Color)
	}
	if e.Image == nil || e.Image.URL != "https://image.tmdb.org/t/p/w780/en.jpg" {
		t.Errorf("Image = %+v", e.Image)
	}
	if got := fieldValue(t, e, "Directed by Christopher Nolan"); got != "A thief who steals corporate secrets." {
		t.Errorf("overview = %q", got)
	}
	if got := fieldValue(t, e, "Genre"); got != "Action, Science Fiction" {
		t.Errorf("Genre = %q", got)
	}
	if got := fieldValue(t, e, "Runtime"); got != "2h 28m" {
		t.Errorf("Runtime = %q", got)
	}
	if got := fieldValue(t, e, "Rating"); got != "8.8/10" {
		t.Errorf("Rating = %q", got)
	}
}

func TestMediaEmbedRequestedUsesGuildColor(t *testing.T) {
	cfg := &models.GuildConfig{ColorSuccess: "#123456"}
	e := MediaEmbed(movieResult(), StatusRequested, cfg)
	if e.Author.Name != "✅ Successfully Requested!" {
		t.Errorf("Author = %q", e.Author.Name)
	}
	if e.Color != 0x123456 {
		t.Errorf("Color = %#x, want guild success color", e.Color)
	}
}

func TestMediaEmbedDegradesGracefully(t *testing.T) {
	res := &enrichment.Result{
		Ref:     models.MediaReference{ExternalID: "1399", Kind: models.MediaKindTV},
		Details: &tmdb.Details{Name: "Game of Thrones", NumberOfSeasons: 8, Overview: strings.Repeat("x", 2000)},
	}
	e := MediaEmbed(res, StatusSearch, nil)

	if e.Title != "Game of Thrones" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Author.Name != "📺 TV Show Found" {
		t.Errorf("Author = %q", e.Author.Name)
	}
	if e.URL != "" || e.Image != nil {
		t.Errorf("URL = %q, Image = %+v, want none", e.URL, e.Image)
	}
	summary := fieldValue(t, e, "Summary")
	if utf8.RuneCountInString(summary) != 1024 || !strings.HasSuffix(summary, "...") {
		t.Errorf("summary length = %d", utf8.RuneCountInString(summary))
	}
	if got := fieldValue(t, e, "Genre"); got != "N/A" {
		t.Errorf("Genre = %q", got)
	}
	if got := fieldValue(t, e, "Runtime"); got != "8 seasons" {
		t.Errorf("Runtime = %q", got)
	}
	if got := fieldValue(t, e, "Rating"); got != "N/A" {
		t.Errorf("Rating = %q, want N/A without an IMDb id", got)
	}
}

func TestMediaEmbedTVRuntime(t *testing.T) {
	tests := []struct {
		name    string
		seasons int
		want    string
	}{
		{"known", 3, "3 seasons"},
		{"missing", 0, NotAvailable},
		{"negative", -1, NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &enrichment.Result{
				Ref:     models.MediaReference{ExternalID: "1", Kind: models.MediaKindTV},
				Details: &tmdb.Details{Name: "Show", NumberOfSeasons: tt.seasons},
			}
			if got := fieldValue(t, MediaEmbed(res, StatusSearch, nil), "Runtime"); got != tt.want {
				t.Errorf("Runtime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotificationEmbedTruncatesOversizedPayload(t *testing.T) {
	n := &enrichment.Notification{Event: &models.JellyfinItemAdded{
		ItemType: models.ItemTypeMovie,
		ItemID:   "m1",
		Name:     strings.Repeat("é", 300),
		Genres:   strings.Repeat("g", 1200),
	}}
	e := NotificationEmbed(n, &models.GuildConfig{})

	if got := utf8.RuneCountInString(e.Title); got != 256 {
		t.Errorf("title length = %d, want 256", got)
	}
	if !strings.HasSuffix(e.Title, "...") {
		t.Errorf("title = %q, want ellipsis", e.Title)
	}
	if got := utf8.RuneCountInString(fieldValue(t, e, "Genre")); got != 1024 {
		t.Errorf("genre length = %d, want 1024", got)
	}
}

func TestNotificationEmbedEpisode(t *testing.T) {
	season, episode := 1, 3
	n := &enrichment.Notification{Event: &models.JellyfinItemAdded{
		NotificationType:  models.NotificationTypeItemAdded,
		ItemType:          models.ItemTypeEpisode,
		ItemID:            "ep3",
		ServerID:          "srv",
		Name:              "Finale",
		SeriesName:        "Severance",
		ParentIndexNumber: &season,
		IndexNumber:       &episode,
		RunTimeTicks:      3_000_000_000,
	}}
	cfg := &models.GuildConfig{JellyfinServerURL: "https://jf.example.com/"}

	e := NotificationEmbed(n, cfg)
	if e.Title != "Severance - S01E03 - Finale" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Author.Name != "📺 New Episode Added" {
		t.Errorf("Author = %q", e.Author.Name)
	}
	if e.Color != 0xcba6f7 {
		t.Errorf("Color = %#x", e.Color)
	}
	if e.URL != "https://jf.example.com/web/index.html#!/details?id=ep3&serverId=srv" {
		t.Errorf("URL = %q", e.URL)
	}
	if e.Image == nil || e.Image.URL != "https://jf.example.com/Items/ep3/Images/Thumb" {
		t.Errorf("Image = %+v", e.Image)
	}
	if got := fieldValue(t, e, "Summary"); got != NoDescription {
		t.Errorf("Summary = %q", got)
	}
	if got := fieldValue(t, e, "Runtime"); got != "0h 5m" {
		t.Errorf("Runtime = %q", got)
	}
	if got := fieldValue(t, e, "Genre"); got != "N/A" {
		t.Errorf("Genre = %q", got)
	}
}

func TestNotificationEmbedMovieUsesOMDb(t *testing.T) {
	n := &enrichment.Notification{
		Event: &models.JellyfinItemAdded{ItemType: models.ItemTypeMovie, Name: "Dune", Year: 2021, ItemID: "m1", ProviderImdb: "tt1160419"},
		OMDb:  &omdb.Title{Director: "Denis Villeneuve", Plot: "Paul Atreides...", Genre: "Sci-Fi", IMDbRating: "8.0"},
	}
	e := NotificationEmbed(n, &models.GuildConfig{})

	if e.Title != "Dune (2021)" {
		t.Errorf("Title = %q", e.Title)
	}
	if got := fieldValue(t, e, "Directed by Denis Villeneuve"); got != "Paul Atreides..." {
		t.Errorf("plot = %q", got)
	}
	if got := fieldValue(t, e, "Genre"); got != "Sci-Fi" {
		t.Errorf("Genre = %q", got)
	}
	if got := fieldValue(t, e, "Rating"); got != "8.0/10" {
		t.Errorf("Rating = %q", got)
	}
	if e.URL != "" || e.Image != nil {
		t.Errorf("links without a Jellyfin URL: URL = %q, Image = %+v", e.URL, e.Image)
	}
}

func buttonsOf(t *testing.T, rows []discordgo.MessageComponent) []discordgo.Button {
	t.Helper()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row, ok := rows[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("row type = %T", rows[0])
	}
	buttons := make([]discordgo.Button, 0, len(row.Components))
	for _, c := range row.Components {
		buttons = append(buttons, c.(discordgo.Button))
	}
	return buttons
}

func TestActionButtons(t *testing.T) {
	ref := models.MediaReference{ExternalID: "27205", Kind: models.MediaKindMovie}

	buttons := buttonsOf(t, ActionButtons(ref, "tt1375666", false))
	if len(buttons) != 3 {
		t.Fatalf("buttons = %d, want 3", len(buttons))
	}
	if buttons[0].URL != "https://letterboxd.com/imdb/tt1375666" || buttons[1].URL != "https://www.imdb.com/title/tt1375666" {
		t.Errorf("links = %q, %q", buttons[0].URL, buttons[1].URL)
	}
	if buttons[2].CustomID != "request|27205|movie" || buttons[2].Disabled {
		t.Errorf("request button = %+v", buttons[2])
	}

	buttons = buttonsOf(t, ActionButtons(ref, "", true))
	if len(buttons) != 1 {
		t.Fatalf("buttons = %d, want 1 without an IMDb id", len(buttons))
	}
	if buttons[0].CustomID != models.RequestedButtonID || !buttons[0].Disabled || buttons[0].Label != "Requested" {
		t.Errorf("requested button = %+v", buttons[0])
	}
}

func TestNotificationButtons(t *testing.T) {
	if got := NotificationButtons("", ""); got != nil {
		t.Errorf("NotificationButtons() = %v, want nil", got)
	}
	buttons := buttonsOf(t, NotificationButtons("tt1", "https://jf/watch"))
	if len(buttons) != 3 || buttons[2].Label != "▶ Watch Now" {
		t.Errorf("buttons = %+v", buttons)
	}
}

func TestAutocompleteChoices(t *testing.T) {
	results := []tmdb.SearchResult{
		{ID: 27205, MediaType: "movie", Title: "Inception", ReleaseDate: "2010-07-15", PosterPath: "/p.jpg"},
		{ID: 1, MediaType: "person", Name: "Christopher Nolan", PosterPath: "/p.jpg"},
		{ID: 2, MediaType: "movie", Title: "No Poster"},
		{ID: 1399, MediaType: "tv", Name: "Game of Thrones", FirstAirDate: "2011-04-17", PosterPath: "/p.jpg"},
		{ID: 3, MediaType: "tv", Name: strings.Repeat("L", 150), PosterPath: "/p.jpg"},
	}

	choices := AutocompleteChoices(results, 10)
	if len(choices) != 3 {
		t.Fatalf("choices = %d, want 3", len(choices))
	}
	if choices[0].Name != "🎬 Inception (2010)" || choices[0].Value != "27205|movie" {
		t.Errorf("choice 0 = %+v", choices[0])
	}
	if choices[1].Name != "📺 Game of Thrones (2011)" || choices[1].Value != "1399|tv" {
		t.Errorf("choice 1 = %+v", choices[1])
	}
	if n := utf8.RuneCountInString(choices[2].Name); n != 100 {
		t.Errorf("long name length = %d, want 100", n)
	}

	if got := AutocompleteChoices(results, 1); len(got) != 1 {
		t.Errorf("limit 1 returned %d choices", len(got))
	}
}

func TestSetupButton(t *testing.T) {
	buttons := buttonsOf(t, SetupButton("https://anchorr.example.com/setup?guild_id=1"))
	if buttons[0].Label != "Configure Bot" || buttons[0].Style != discordgo.LinkButton {
		t.Errorf("button = %+v", buttons[0])
	}
}
