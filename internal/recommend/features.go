// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// errPCAFailed is returned when the SVD behind the reduction does not converge.
var errPCAFailed = errors.New("principal component analysis failed to converge")

// featureStore holds the reduced catalogue. It is never mutated after
// construction, so it can be shared across goroutines without locking.
type featureStore struct {
	ids         []string
	index       map[string]int
	vectors     [][]float64
	rawDim      int
	dim         int
	explained   []float64
	processedAt time.Time
}

func newFeatureStore(ids []string, vectors [][]float64, rawDim int, explained []float64) *featureStore {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}

	return &featureStore{
		ids:         ids,
		index:       index,
		vectors:     vectors,
		rawDim:      rawDim,
		dim:         dim,
		explained:   explained,
		processedAt: time.Now(),
	}
}

// vector returns the reduced vector for an artwork.
func (fs *featureStore) vector(id string) ([]float64, bool) {
	i, ok := fs.index[id]
	if !ok {
		return nil, false
	}
	return fs.vectors[i], true
}

func (fs *featureStore) contains(id string) bool {
	_, ok := fs.index[id]
	return ok
}

func (fs *featureStore) info() CatalogueInfo {
	explained := make([]float64, len(fs.explained))
	copy(explained, fs.explained)

	return CatalogueInfo{
		Ready:             true,
		Artworks:          len(fs.ids),
		RawDimension:      fs.rawDim,
		ReducedDimension:  fs.dim,
		ExplainedVariance: explained,
		ProcessedAt:       fs.processedAt,
	}
}

// reduceCatalogue standardizes every column of the catalogue and projects it
// onto its first k = min(n, d, maxComponents) principal components.
//
// A single-artwork catalogue standardizes to the origin and has no variance
// to decompose, so it reduces to the one-dimensional vector [0].
func reduceCatalogue(cat *Catalogue, maxComponents int) (*featureStore, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	n, d := cat.Len(), cat.Dim()
	k := min(n, d, maxComponents)

	ids := make([]string, n)
	copy(ids, cat.IDs)

	if n == 1 {
		return newFeatureStore(ids, [][]float64{{0}}, d, []float64{0}), nil
	}

	x := standardize(cat.Vectors)

	reduced, explained, err := project(x, k)
	if err != nil {
		return nil, err
	}

	return newFeatureStore(ids, reduced, d, explained), nil
}

// standardize builds an n×d matrix with every column scaled to zero mean and
// unit population variance. Constant columns become all zeros.
func standardize(rows [][]float64) *mat.Dense {
	n, d := len(rows), len(rows[0])

	x := mat.NewDense(n, d, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}

	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean, variance := stat.PopMeanVariance(col, nil)

		if isConstantColumn(mean, variance, n) {
			for i := range col {
				col[i] = 0
			}
		} else {
			scale := math.Sqrt(variance)
			for i := range col {
				col[i] = (col[i] - mean) / scale
			}
		}
		x.SetCol(j, col)
	}

	return x
}

// isConstantColumn reports whether a column's variance is indistinguishable
// from rounding noise around its mean.
func isConstantColumn(mean, variance float64, n int) bool {
	const eps = 0x1p-52
	bound := float64(n)*eps*variance + math.Pow(float64(n)*mean*eps, 2)
	return variance <= bound
}

// project runs PCA on x and returns the rows projected onto the first k
// components together with each kept component's explained variance ratio.
func project(x *mat.Dense, k int) ([][]float64, []float64, error) {
	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, nil, errPCAFailed
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	d, _ := vecs.Dims()
	basis := mat.DenseCopyOf(vecs.Slice(0, d, 0, k))
	orientComponents(basis)

	var z mat.Dense
	z.Mul(x, basis)

	n, _ := z.Dims()
	reduced := make([][]float64, n)
	for i := 0; i < n; i++ {
		reduced[i] = mat.Row(nil, i, &z)
	}

	total := 0.0
	for _, v := range vars {
		total += v
	}
	explained := make([]float64, k)
	if total > 0 {
		for i := 0; i < k; i++ {
			explained[i] = vars[i] / total
		}
	}

	return reduced, explained, nil
}

// orientComponents flips each basis column so that its largest-magnitude
// loading is positive, since SVD leaves component signs arbitrary.
func orientComponents(basis *mat.Dense) {
	rows, cols := basis.Dims()
	for j := 0; j < cols; j++ {
		pivot := 0
		for i := 1; i < rows; i++ {
			if math.Abs(basis.At(i, j)) > math.Abs(basis.At(pivot, j)) {
				pivot = i
			}
		}
		if basis.At(pivot, j) >= 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			basis.Set(i, j, -basis.At(i, j))
		}
	}
}

// copyVectors returns a deep copy of vectors.
func copyVectors(vectors [][]float64) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = make([]float64, len(v))
		copy(out[i], v)
	}
	return out
}
