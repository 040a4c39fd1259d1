// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package supervisor provides process supervision for ArtSwipe using suture v4.

# Overview

Services are organized into two layers for failure isolation:

	RootSupervisor ("artswipe")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogueService
	│   └── StatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A catalogue that fails to load is restarted with backoff inside the data
layer. The API keeps serving liveness probes and reports not ready until the
first load succeeds.

# Logging

Supervisor events go through sutureslog to an slog.Logger. Pass
logging.NewSlogLogger(logger) to send them to zerolog:

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger(logging.Logger()),
	    supervisor.DefaultTreeConfig(),
	)

# Shutdown

Cancel the context passed to Serve or ServeBackground. Each service gets
ShutdownTimeout to return; UnstoppedServiceReport lists the ones that did
not.
*/
package supervisor
