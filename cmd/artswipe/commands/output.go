// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package commands

import (
	"io"

	"github.com/goccy/go-json"
)

// writeJSON prints v as indented JSON, the same shapes the HTTP API returns.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
