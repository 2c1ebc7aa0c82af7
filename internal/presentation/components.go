// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package presentation

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/tomtom215/anchorr/internal/models"
	"github.com/tomtom215/anchorr/internal/tmdb"
)

// ActionButtons renders the link buttons and the Request/Requested button
// of a media card.
func ActionButtons(ref models.MediaReference, imdbID string, requested bool) []discordgo.MessageComponent {
	buttons := imdbLinks(imdbID)

	if requested {
		buttons = append(buttons, discordgo.Button{
			Label:    "Requested",
			Style:    discordgo.SuccessButton,
			CustomID: models.RequestedButtonID,
			Disabled: true,
		})
	} else {
		buttons = append(buttons, discordgo.Button{
			Label:    "Request",
			Style:    discordgo.PrimaryButton,
			CustomID: ref.RequestButtonID(),
		})
	}

	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// NotificationButtons renders the link buttons of a notification. Watch Now
// is omitted when no Jellyfin URL is known.
func NotificationButtons(imdbID, watchURL string) []discordgo.MessageComponent {
	buttons := imdbLinks(imdbID)
	if watchURL != "" {
		buttons = append(buttons, discordgo.Button{
			Label: "▶ Watch Now",
			Style: discordgo.LinkButton,
			URL:   watchURL,
		})
	}
	if len(buttons) == 0 {
		return nil
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// SetupButton renders the "Configure Bot" link of /setup.
func SetupButton(setupURL string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "Configure Bot", Style: discordgo.LinkButton, URL: setupURL},
	}}}
}

// AutocompleteChoice renders one search result, or ok=false when the result
// is not a requestable movie or show with a poster.
func AutocompleteChoice(r *tmdb.SearchResult) (choice *discordgo.ApplicationCommandOptionChoice, ok bool) {
	kind, err := r.Kind()
	if err != nil || r.PosterPath == "" {
		return nil, false
	}

	label := fmt.Sprintf("%s %s", kind.Emoji(), r.DisplayTitle())
	if year := r.Year(); year != "" {
		label = fmt.Sprintf("%s (%s)", label, year)
	}

	ref := models.MediaReference{ExternalID: strconv.Itoa(r.ID), Kind: kind}
	return &discordgo.ApplicationCommandOptionChoice{
		Name:  truncate(label, maxChoiceName),
		Value: ref.SelectionValue(),
	}, true
}

// AutocompleteChoices renders up to limit choices.
func AutocompleteChoices(results []tmdb.SearchResult, limit int) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, limit)
	for i := range results {
		if len(choices) == limit {
			break
		}
		if c, ok := AutocompleteChoice(&results[i]); ok {
			choices = append(choices, c)
		}
	}
	return choices
}

func imdbLinks(imdbID string) []discordgo.MessageComponent {
	if imdbID == "" {
		return []discordgo.MessageComponent{}
	}
	return []discordgo.MessageComponent{
		discordgo.Button{Label: "Letterboxd", Style: discordgo.LinkButton, URL: "https://letterboxd.com/imdb/" + imdbID},
		discordgo.Button{Label: "IMDb", Style: discordgo.LinkButton, URL: "https://www.imdb.com/title/" + imdbID},
	}
}
