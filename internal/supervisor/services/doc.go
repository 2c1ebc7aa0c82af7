// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package services adapts Anchorr components to suture.Service.
//
//   - HTTPServerService: ListenAndServe/Shutdown for the webhook and
//     configuration API server.
//   - DiscordGatewayService: the discordgo gateway session, slash command
//     registration and interaction dispatch. It also reports gateway
//     readiness to the health endpoint.
//   - StoreGCService: periodic BadgerDB value log GC.
//
// The notification coalescer implements suture.Service itself.
package services
