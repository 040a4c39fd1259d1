// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-9

func TestReduceCatalogue_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		n, d          int
		maxComponents int
		wantK         int
	}{
		{name: "more artworks than features", n: 20, d: 5, maxComponents: 64, wantK: 5},
		{name: "more features than artworks", n: 4, d: 10, maxComponents: 64, wantK: 4},
		{name: "capped by max components", n: 100, d: 70, maxComponents: 64, wantK: 64},
		{name: "small cap", n: 30, d: 10, maxComponents: 3, wantK: 3},
		{name: "single artwork", n: 1, d: 6, maxComponents: 64, wantK: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat := randomCatalogue(tt.n, tt.d, int64(tt.n*tt.d))
			fs, err := reduceCatalogue(cat, tt.maxComponents)
			if err != nil {
				t.Fatalf("reduceCatalogue() error = %v", err)
			}

			if len(fs.vectors) != tt.n {
				t.Fatalf("len(vectors) = %d, want %d", len(fs.vectors), tt.n)
			}
			for i, v := range fs.vectors {
				if len(v) != tt.wantK {
					t.Fatalf("len(vectors[%d]) = %d, want %d", i, len(v), tt.wantK)
				}
			}
			if fs.dim != tt.wantK {
				t.Errorf("dim = %d, want %d", fs.dim, tt.wantK)
			}
			if fs.rawDim != tt.d {
				t.Errorf("rawDim = %d, want %d", fs.rawDim, tt.d)
			}
			if !reflect.DeepEqual(fs.ids, cat.IDs) {
				t.Error("artwork order not preserved")
			}
		})
	}
}

func TestReduceCatalogue_SingleArtworkIsOrigin(t *testing.T) {
	t.Parallel()

	cat := catalogueOf([]string{"only"}, [][]float64{{3, -1, 7}})
	fs, err := reduceCatalogue(cat, 64)
	if err != nil {
		t.Fatalf("reduceCatalogue() error = %v", err)
	}
	if !reflect.DeepEqual(fs.vectors, [][]float64{{0}}) {
		t.Errorf("vectors = %v, want [[0]]", fs.vectors)
	}
}

func TestReduceCatalogue_Deterministic(t *testing.T) {
	t.Parallel()

	cat := randomCatalogue(25, 8, 21)

	first, err := reduceCatalogue(cat, 64)
	if err != nil {
		t.Fatalf("reduceCatalogue() error = %v", err)
	}
	second, err := reduceCatalogue(cat, 64)
	if err != nil {
		t.Fatalf("reduceCatalogue() error = %v", err)
	}

	if !reflect.DeepEqual(first.vectors, second.vectors) {
		t.Error("reprocessing the same catalogue produced different vectors")
	}
}

func TestReduceCatalogue_ProjectionProperties(t *testing.T) {
	t.Parallel()

	cat := randomCatalogue(50, 6, 33)
	fs, err := reduceCatalogue(cat, 64)
	if err != nil {
		t.Fatalf("reduceCatalogue() error = %v", err)
	}

	// Standardized data is centered, so every component has zero mean.
	variances := make([]float64, fs.dim)
	for j := 0; j < fs.dim; j++ {
		mean := 0.0
		for _, v := range fs.vectors {
			mean += v[j]
		}
		mean /= float64(len(fs.vectors))
		if math.Abs(mean) > 1e-9 {
			t.Errorf("component %d mean = %g, want 0", j, mean)
		}
		for _, v := range fs.vectors {
			variances[j] += v[j] * v[j]
		}
	}

	for j := 1; j < fs.dim; j++ {
		if variances[j] > variances[j-1]+tolerance {
			t.Errorf("component %d variance %g exceeds component %d variance %g", j, variances[j], j-1, variances[j-1])
		}
	}

	total := 0.0
	for j := 1; j < len(fs.explained); j++ {
		if fs.explained[j] > fs.explained[j-1]+tolerance {
			t.Errorf("explained variance not descending: %v", fs.explained)
		}
	}
	for _, r := range fs.explained {
		total += r
	}
	// Keeping every component explains all of the variance.
	if math.Abs(total-1) > 1e-6 {
		t.Errorf("explained variance sums to %g, want 1", total)
	}
}

func TestReduceCatalogue_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cat  *Catalogue
	}{
		{name: "nil", cat: nil},
		{name: "empty", cat: NewCatalogue(0)},
		{
			name: "length mismatch",
			cat:  &Catalogue{IDs: []string{"a", "b"}, Vectors: [][]float64{{1}}},
		},
		{
			name: "dimension mismatch",
			cat:  catalogueOf([]string{"a", "b"}, [][]float64{{1, 2}, {3}}),
		},
		{
			name: "empty vector",
			cat:  catalogueOf([]string{"a"}, [][]float64{{}}),
		},
		{
			name: "duplicate id",
			cat:  catalogueOf([]string{"a", "a"}, [][]float64{{1}, {2}}),
		},
		{
			name: "empty id",
			cat:  catalogueOf([]string{""}, [][]float64{{1}}),
		},
		{
			name: "not a number",
			cat:  catalogueOf([]string{"a", "b"}, [][]float64{{1}, {math.NaN()}}),
		},
		{
			name: "infinite",
			cat:  catalogueOf([]string{"a", "b"}, [][]float64{{math.Inf(1)}, {2}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := reduceCatalogue(tt.cat, 64)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("reduceCatalogue() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStandardize(t *testing.T) {
	t.Parallel()

	rows := [][]float64{
		{1, 5, 10},
		{2, 5, 20},
		{3, 5, 30},
	}
	x := standardize(rows)

	want := math.Sqrt(1.5) // (v-mean)/popstd for {1,2,3}
	expected := [][]float64{
		{-want, 0, -want},
		{0, 0, 0},
		{want, 0, want},
	}

	for i, row := range expected {
		for j, v := range row {
			if got := x.At(i, j); math.Abs(got-v) > tolerance {
				t.Errorf("x[%d][%d] = %g, want %g", i, j, got, v)
			}
		}
	}
}

func TestIsConstantColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mean     float64
		variance float64
		n        int
		want     bool
	}{
		{name: "zero variance", mean: 5, variance: 0, n: 10, want: true},
		{name: "rounding noise on large mean", mean: 1e8, variance: 1e-20, n: 10, want: true},
		{name: "real spread", mean: 2, variance: 0.5, n: 3, want: false},
		{name: "small but real spread", mean: 0, variance: 1e-12, n: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isConstantColumn(tt.mean, tt.variance, tt.n); got != tt.want {
				t.Errorf("isConstantColumn(%g, %g, %d) = %v, want %v", tt.mean, tt.variance, tt.n, got, tt.want)
			}
		})
	}
}

func TestOrientComponents(t *testing.T) {
	t.Parallel()

	basis := mat.NewDense(2, 2, []float64{
		-3, 1,
		1, -0.5,
	})
	orientComponents(basis)

	want := mat.NewDense(2, 2, []float64{
		3, 1,
		-1, -0.5,
	})
	if !mat.Equal(basis, want) {
		t.Errorf("orientComponents() = %v, want %v", mat.Formatted(basis), mat.Formatted(want))
	}
}

func TestEngine_ProcessCatalogue(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testConfig(2))
	if err := e.ProcessCatalogue(context.Background(), randomCatalogue(12, 4, 1)); err != nil {
		t.Fatalf("ProcessCatalogue() error = %v", err)
	}

	info := e.CatalogueInfo()
	if !info.Ready || info.Artworks != 12 || info.RawDimension != 4 || info.ReducedDimension != 4 {
		t.Errorf("CatalogueInfo() = %+v, want 12 artworks reduced 4 -> 4", info)
	}
	if len(info.ExplainedVariance) != 4 {
		t.Errorf("len(ExplainedVariance) = %d, want 4", len(info.ExplainedVariance))
	}
	if ids := e.ArtworkIDs(); len(ids) != 12 || ids[0] != "art-0" || ids[11] != "art-11" {
		t.Errorf("ArtworkIDs() = %v, want catalogue order", ids)
	}
}

func TestEngine_ReprocessKeepsLedger(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testConfig(5))
	cat := randomCatalogue(10, 3, 2)
	if err := e.ProcessCatalogue(context.Background(), cat); err != nil {
		t.Fatalf("ProcessCatalogue() error = %v", err)
	}

	mustSwipe(t, e, "u1", "art-3", true)

	if err := e.ProcessCatalogue(context.Background(), cat); err != nil {
		t.Fatalf("second ProcessCatalogue() error = %v", err)
	}

	pref, ok := e.Preferences("u1")
	if !ok || !reflect.DeepEqual(pref.Liked, []string{"art-3"}) {
		t.Errorf("Preferences() = %+v, want ledger kept across reprocessing", pref)
	}
}
