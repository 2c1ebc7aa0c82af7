// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

package interaction

import "github.com/bwmarrin/discordgo"

// Command names.
const (
	CommandSetup   = "setup"
	CommandSearch  = "search"
	CommandRequest = "request"

	// OptionTitle is the autocomplete option of search and request.
	OptionTitle = "title"
)

var adminPermission = int64(discordgo.PermissionAdministrator)

// Commands returns the global slash command definitions.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandSetup,
			Description:              "Get a link to configure the bot on the web dashboard.",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:        CommandSearch,
			Description: "Search for a movie or TV show.",
			Options:     []*discordgo.ApplicationCommandOption{titleOption("The title to search for")},
		},
		{
			Name:        CommandRequest,
			Description: "Request a movie or TV show directly.",
			Options:     []*discordgo.ApplicationCommandOption{titleOption("The title to request")},
		},
	}
}

func titleOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptionTitle,
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}
