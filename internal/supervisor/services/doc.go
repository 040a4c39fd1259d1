// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package services provides suture.Service wrappers for ArtSwipe components.

Each wrapper implements suture's Serve(ctx context.Context) error and
fmt.Stringer, so supervisor events name the service.

# Available Services

Catalogue (CatalogueService):
  - Loads the features file and optional metadata CSV into the engine
  - Restores the persisted ledger after the first successful load
  - Watches the features file and retrains models after a reload
  - Serves artwork metadata to the API for enriched recommendations

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the ListenAndServe pattern to Serve

Stats (StatsService):
  - Publishes user gauges and process uptime on a ticker

# Usage Example

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())

	catalogueSvc := services.NewCatalogueService(engine, services.CatalogueServiceConfig{
	    FeaturesPath: cfg.Catalogue.FeaturesPath,
	    MetadataPath: cfg.Catalogue.MetadataPath,
	    Watch:        cfg.Catalogue.Watch,
	}, logger)
	tree.AddDataService(catalogueSvc)

	server := &http.Server{Addr: addr, Handler: router.SetupChi()}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second, logger))

	tree.Serve(ctx)
*/
package services
