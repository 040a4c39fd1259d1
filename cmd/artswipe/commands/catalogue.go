// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/artswipe/internal/logging"
	"github.com/tomtom215/artswipe/internal/recommend"
)

// catalogueOutput is the catalogue command's JSON document.
type catalogueOutput struct {
	Ready             bool      `json:"ready"`
	Artworks          int       `json:"artworks"`
	RawDimension      int       `json:"raw_dimension"`
	ReducedDimension  int       `json:"reduced_dimension"`
	ExplainedVariance []float64 `json:"explained_variance,omitempty"`
	ProcessedAt       time.Time `json:"processed_at"`
	MetadataEntries   int       `json:"metadata_entries"`
	Users             int       `json:"users"`
	Trained           int       `json:"trained_users"`
	IDs               []string  `json:"artwork_ids,omitempty"`
}

func newCatalogueOutput(info recommend.CatalogueInfo, metadataEntries int, stats recommend.Metrics) catalogueOutput {
	return catalogueOutput{
		Ready:             info.Ready,
		Artworks:          info.Artworks,
		RawDimension:      info.RawDimension,
		ReducedDimension:  info.ReducedDimension,
		ExplainedVariance: info.ExplainedVariance,
		ProcessedAt:       info.ProcessedAt,
		MetadataEntries:   metadataEntries,
		Users:             stats.Users,
		Trained:           stats.TrainedUsers,
	}
}

func newCatalogueCmd(opts *globalOptions) *cobra.Command {
	var listIDs bool

	cmd := &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog"},
		Short:   "Load the catalogue and print a summary",
		Long: `Load and reduce the features file, restore the persisted ledger, and
print the catalogue summary as JSON. Useful to check a new features file
before pointing a running server at it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			logger := logging.Logger()
			rt, err := newRuntime(cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := rt.close(); err != nil {
					logger.Error().Err(err).Msg("Error closing ledger store")
				}
			}()

			catalogueSvc, err := rt.loadOnce(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			stats := rt.engine.Metrics()
			out := newCatalogueOutput(rt.engine.CatalogueInfo(), catalogueSvc.Metadata().Len(), stats)
			if listIDs {
				out.IDs = rt.engine.ArtworkIDs()
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&listIDs, "ids", false, "include every artwork ID")
	return cmd
}

