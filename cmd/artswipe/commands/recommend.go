// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/artswipe/internal/catalogue"
	"github.com/tomtom215/artswipe/internal/logging"
	"github.com/tomtom215/artswipe/internal/recommend"
)

type recommendOptions struct {
	user     string
	limit    int
	likes    []string
	dislikes []string
	enrich   bool
}

// recommendOutput is the command's JSON document. It carries the same keys
// as the API's recommendations payload plus the user's status.
type recommendOutput struct {
	UserID      string               `json:"user_id"`
	Items       []string             `json:"items"`
	Scores      []float64            `json:"scores,omitempty"`
	Mode        recommend.Mode       `json:"mode"`
	GeneratedAt time.Time            `json:"generated_at"`
	Artworks    []catalogue.Artwork  `json:"artworks,omitempty"`
	Status      recommend.UserStatus `json:"status"`
}

func newRecommendOutput(res *recommend.Result, status recommend.UserStatus) recommendOutput {
	return recommendOutput{
		UserID:      res.UserID,
		Items:       res.Items,
		Scores:      res.Scores,
		Mode:        res.Mode,
		GeneratedAt: res.GeneratedAt,
		Status:      status,
	}
}

func newRecommendCmd(opts *globalOptions) *cobra.Command {
	ro := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations for a user",
		Long: `Load the catalogue and the persisted ledger, apply any swipes given on
the command line, and print a recommendation list as JSON.

Swipes are recorded through the configured persistence backend, exactly as
if they had been posted to the API.`,
		Example: `  artswipe recommend --user alice
  artswipe recommend --user alice --like monet.jpg --like turner.jpg --dislike warhol.jpg -n 5 --enrich`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ro.user == "" {
				return errors.New("--user is required")
			}
			if ro.limit < 0 {
				return fmt.Errorf("-n must not be negative, got %d", ro.limit)
			}

			cfg, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if ro.limit > cfg.Recommend.MaxLimit {
				return fmt.Errorf("-n must not exceed %d", cfg.Recommend.MaxLimit)
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

			ctx := cmd.Context()
			catalogueSvc, err := rt.loadOnce(ctx, cfg, logger)
			if err != nil {
				return err
			}

			for _, id := range ro.likes {
				if err := rt.engine.RecordSwipe(ctx, ro.user, id, true); err != nil {
					return fmt.Errorf("like %s: %w", id, err)
				}
			}
			for _, id := range ro.dislikes {
				if err := rt.engine.RecordSwipe(ctx, ro.user, id, false); err != nil {
					return fmt.Errorf("dislike %s: %w", id, err)
				}
			}

			result, err := rt.engine.Recommend(ctx, ro.user, ro.limit)
			if err != nil {
				return err
			}

			out := newRecommendOutput(result, rt.engine.Status(ro.user))
			if ro.enrich {
				out.Artworks = catalogueSvc.Metadata().Enrich(result.Items)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&ro.user, "user", "u", "", "user ID (required)")
	flags.IntVarP(&ro.limit, "limit", "n", 0, "number of recommendations (0 uses recommend.default_limit)")
	flags.StringArrayVar(&ro.likes, "like", nil, "artwork ID to record as liked before recommending (repeatable)")
	flags.StringArrayVar(&ro.dislikes, "dislike", nil, "artwork ID to record as disliked before recommending (repeatable)")
	flags.BoolVar(&ro.enrich, "enrich", false, "include artist, genre and style from the metadata file")
	return cmd
}
