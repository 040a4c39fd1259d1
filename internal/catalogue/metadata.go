// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package catalogue

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Required metadata columns.
var metadataColumns = []string{"filename", "artist", "genre", "style"}

// Artwork is the display metadata for one artwork.
type Artwork struct {
	Filename string `json:"filename"`
	Artist   string `json:"artist"`
	Genre    string `json:"genre"`
	Style    string `json:"style"`
}

// Metadata indexes artwork metadata by filename. It is read-only after
// loading and safe for concurrent use.
type Metadata struct {
	byFilename map[string]Artwork
}

// LoadMetadata reads the metadata CSV at path.
func LoadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("open metadata file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	md, err := ParseMetadata(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}

// ParseMetadata parses CSV with a header row. Extra columns are ignored and
// later rows win over earlier rows with the same filename.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("metadata file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := make([]int, len(metadataColumns))
	for i, name := range metadataColumns {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("metadata header missing column %q", name)
		}
		cols[i] = col
	}

	md := &Metadata{byFilename: make(map[string]Artwork)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata row: %w", err)
		}

		field := func(i int) string {
			if cols[i] < len(record) {
				return record[cols[i]]
			}
			return ""
		}

		art := Artwork{
			Filename: field(0),
			Artist:   field(1),
			Genre:    field(2),
			Style:    field(3),
		}
		if art.Filename == "" {
			continue
		}
		md.byFilename[art.Filename] = art
	}

	return md, nil
}

// Len returns the number of indexed artworks.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byFilename)
}

// Lookup returns the metadata for one artwork.
func (m *Metadata) Lookup(filename string) (Artwork, bool) {
	if m == nil {
		return Artwork{}, false
	}
	art, ok := m.byFilename[filename]
	return art, ok
}

// Enrich maps artwork IDs to their metadata, keeping order. IDs without
// metadata are dropped.
func (m *Metadata) Enrich(ids []string) []Artwork {
	out := make([]Artwork, 0, len(ids))
	for _, id := range ids {
		if art, ok := m.Lookup(id); ok {
			out = append(out, art)
		}
	}
	return out
}
