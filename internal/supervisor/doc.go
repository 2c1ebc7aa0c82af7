// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

/*
Package supervisor runs Anchorr's long-lived services under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("anchorr")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService
	├── MessagingSupervisor ("messaging-layer")
	│   ├── DiscordGatewayService
	│   └── Coalescer
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently. A gateway that cannot connect
backs off and retries without touching the HTTP server, so Jellyfin
webhooks keep being accepted while Discord is unreachable.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewStoreGCService(store, cfg.Store.GCInterval))
	tree.AddMessagingService(gateway)
	tree.AddMessagingService(coal)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Suture events are logged through sutureslog into the zerolog logger.

# Service contract

Serve returns ctx.Err() after a requested shutdown and any other error to
request a restart. Services that miss TreeConfig.ShutdownTimeout are listed
by UnstoppedServiceReport.
*/
package supervisor
