// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package presentation

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/enrichment"
	"github.com/tomtom215/anchorr/internal/models"
)

// TMDBImageBase prefixes backdrop paths.
const TMDBImageBase = "https://image.tmdb.org/t/p/w780"

// Status selects the author line and color of a media card.
type Status int

const (
	StatusSearch Status = iota
	StatusRequested
)

// MediaEmbed renders a /search or /request result.
func MediaEmbed(res *enrichment.Result, status Status, cfg *models.GuildConfig) *discordgo.MessageEmbed {
	d := res.Details
	kind := res.Ref.Kind

	title := d.DisplayTitle()
	if year := d.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", title, year)
	}

	author := "📺 TV Show Found"
	if kind == models.MediaKindMovie {
		author = "🎬 Movie Found"
	}
	color := ParseColor(cfg.SearchColor(), models.DefaultSearchColor)
	if status == StatusRequested {
		author = "✅ Successfully Requested!"
		color = ParseColor(cfg.SuccessColor(), models.DefaultSuccessColor)
	}

	embed := &discordgo.MessageEmbed{
		Title:  truncate(title, maxEmbedTitle),
		Color:  color,
		Author: &discordgo.MessageEmbedAuthor{Name: author},
	}
	if imdb := d.IMDbID(); imdb != "" {
		embed.URL = "https://www.imdb.com/title/" + imdb + "/"
	}
	if res.Backdrop != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: TMDBImageBase + res.Backdrop}
	}

	header := "Summary"
	if director := res.OMDb.DirectorName(); kind == models.MediaKindMovie && director != "" {
		header = "Directed by " + director
	}

	genres := strings.Join(d.GenreNames(), ", ")
	if genres == "" {
		genres = NotAvailable
	}

	runtime := NotAvailable
	switch {
	case kind == models.MediaKindMovie:
		runtime = MinutesToHhMm(d.Runtime)
	case d.NumberOfSeasons > 0:
		runtime = fmt.Sprintf("%d seasons", d.NumberOfSeasons)
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: header, Value: truncateField(firstNonEmpty(d.Overview, NoDescription))},
		{Name: "Genre", Value: genres, Inline: true},
		{Name: "Runtime", Value: runtime, Inline: true},
		{Name: "Rating", Value: FormatRating(res.OMDb.Rating()), Inline: true},
	}
	return embed
}

// NotificationEmbed renders a "new item added" card from a coalesced event.
func NotificationEmbed(n *enrichment.Notification, cfg *models.GuildConfig) *discordgo.MessageEmbed {
	ev := n.Event
	fallback := cfg.JellyfinServerURL

	author := "🎬 New Movie Added"
	if ev.IsEpisode() {
		author = "📺 New Episode Added"
	}

	header := "Summary"
	if director := n.OMDb.DirectorName(); !ev.IsEpisode() && director != "" {
		header = "Directed by " + director
	}

	embed := &discordgo.MessageEmbed{
		Title:  truncate(ev.Title(), maxEmbedTitle),
		URL:    ev.WatchURL(fallback),
		Color:  ParseColor(cfg.NotificationColor(), models.DefaultNotificationColor),
		Author: &discordgo.MessageEmbedAuthor{Name: author},
		Fields: []*discordgo.MessageEmbedField{
			{Name: header, Value: truncateField(firstNonEmpty(ev.Overview, n.OMDb.PlotText(), NoDescription))},
			{Name: "Genre", Value: truncateField(firstNonEmpty(ev.Genres, n.OMDb.GenreText(), NotAvailable)), Inline: true},
			{Name: "Runtime", Value: MinutesToHhMm(ev.RuntimeMinutes()), Inline: true},
			{Name: "Rating", Value: FormatRating(n.OMDb.Rating()), Inline: true},
		},
	}
	if thumb := ev.ThumbnailURL(fallback); thumb != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: thumb}
	}
	return embed
}
