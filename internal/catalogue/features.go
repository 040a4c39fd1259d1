// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package catalogue

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/artswipe/internal/recommend"
)

// ErrMalformedFeatures is returned when the features file is not a JSON
// object of numeric arrays.
var ErrMalformedFeatures = errors.New("malformed features file")

// LoadFeatures reads the features file at path.
func LoadFeatures(path string) (*recommend.Catalogue, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("open features file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	cat, err := DecodeFeatures(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// DecodeFeatures decodes a JSON object of artwork ID to feature vector,
// keeping the document's key order. The result is validated.
func DecodeFeatures(r io.Reader) (*recommend.Catalogue, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFeatures, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedFeatures)
	}

	cat := recommend.NewCatalogue(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFeatures, err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected an artwork id, got %v", ErrMalformedFeatures, tok)
		}

		var vector []float64
		if err := dec.Decode(&vector); err != nil {
			return nil, fmt.Errorf("%w: artwork %q: %w", ErrMalformedFeatures, id, err)
		}
		cat.Add(id, vector)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFeatures, err)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
