// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

package recommend

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ForestTrainer fits random forest classifiers: bagged CART trees split on
// Gini impurity over a random feature subset at each node.
type ForestTrainer struct {
	// Trees is the number of trees. Values below 1 are treated as 1.
	Trees int

	// MaxDepth limits tree depth. Zero means unbounded.
	MaxDepth int

	// MinLeaf is the minimum number of samples in a leaf. Values below 1 are treated as 1.
	MinLeaf int

	// MaxFeatures is the number of features tried per split.
	// Zero means round(sqrt(d)).
	MaxFeatures int

	// Seed makes bootstrap sampling and feature selection reproducible.
	Seed int64
}

// NewForestTrainer creates a trainer from forest configuration.
//
//nolint:gocritic // cfg passed by value for immutability
func NewForestTrainer(cfg ForestConfig, seed int64) ForestTrainer {
	return ForestTrainer{
		Trees:       cfg.Trees,
		MaxDepth:    cfg.MaxDepth,
		MinLeaf:     cfg.MinLeaf,
		MaxFeatures: cfg.MaxFeatures,
		Seed:        seed,
	}
}

// Forest is a trained random forest. It is immutable and safe for concurrent use.
type Forest struct {
	trees []*treeNode
	dim   int
}

// treeNode is either a split (left/right set) or a leaf carrying the fraction
// of positive samples that reached it.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	prob      float64
}

func (n *treeNode) isLeaf() bool {
	return n.left == nil
}

// treeParams holds per-fit growth limits.
type treeParams struct {
	maxDepth    int
	minLeaf     int
	maxFeatures int
}

var _ Trainer = ForestTrainer{}
var _ Classifier = (*Forest)(nil)

// Fit trains a forest on x with binary labels y (1 = liked, 0 = disliked).
//
//nolint:gocritic // value receiver keeps the trainer immutable
func (t ForestTrainer) Fit(x [][]float64, y []int) (Classifier, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: no training samples", ErrInvalidInput)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d samples but %d labels", ErrInvalidInput, len(x), len(y))
	}

	dim := len(x[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty feature vectors", ErrInvalidInput)
	}

	positives := 0
	for i, row := range x {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: sample %d has %d features, want %d", ErrInvalidInput, i, len(row), dim)
		}
		switch y[i] {
		case 1:
			positives++
		case 0:
		default:
			return nil, fmt.Errorf("%w: label %d at sample %d is not binary", ErrInvalidInput, y[i], i)
		}
	}
	if positives == 0 || positives == len(y) {
		return nil, ErrSingleClass
	}

	params := t.params(dim)
	trees := max(t.Trees, 1)

	rng := rand.New(rand.NewSource(t.Seed)) //nolint:gosec // math/rand is fine for bootstrap sampling
	forest := &Forest{
		trees: make([]*treeNode, trees),
		dim:   dim,
	}

	n := len(x)
	sample := make([]int, n)
	for i := range forest.trees {
		for j := range sample {
			sample[j] = rng.Intn(n)
		}
		forest.trees[i] = growTree(x, y, sample, 0, params, rng)
	}

	return forest, nil
}

func (t ForestTrainer) params(dim int) treeParams {
	maxFeatures := t.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Round(math.Sqrt(float64(dim))))
	}
	maxFeatures = min(max(maxFeatures, 1), dim)

	return treeParams{
		maxDepth:    t.MaxDepth,
		minLeaf:     max(t.MinLeaf, 1),
		maxFeatures: maxFeatures,
	}
}

// PredictProba averages the leaf probabilities reached by x in every tree.
// A vector of the wrong dimension scores 0.
func (f *Forest) PredictProba(x []float64) float64 {
	if len(x) != f.dim || len(f.trees) == 0 {
		return 0
	}

	sum := 0.0
	for _, root := range f.trees {
		node := root
		for !node.isLeaf() {
			if x[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		sum += node.prob
	}
	return sum / float64(len(f.trees))
}

// Trees returns the number of trees in the forest.
func (f *Forest) Trees() int {
	return len(f.trees)
}

// growTree builds a CART subtree over the samples in idx.
func growTree(x [][]float64, y []int, idx []int, depth int, p treeParams, rng *rand.Rand) *treeNode {
	positives := 0
	for _, i := range idx {
		positives += y[i]
	}
	leaf := &treeNode{prob: float64(positives) / float64(len(idx))}

	if positives == 0 || positives == len(idx) {
		return leaf
	}
	if len(idx) < 2*p.minLeaf {
		return leaf
	}
	if p.maxDepth > 0 && depth >= p.maxDepth {
		return leaf
	}

	s, ok := bestSplit(x, y, idx, p, rng)
	if !ok {
		return leaf
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if x[i][s.feature] <= s.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf
	}

	return &treeNode{
		feature:   s.feature,
		threshold: s.threshold,
		left:      growTree(x, y, left, depth+1, p, rng),
		right:     growTree(x, y, right, depth+1, p, rng),
		prob:      leaf.prob,
	}
}

type candidateSplit struct {
	feature   int
	threshold float64
	impurity  float64
}

// bestSplit draws features in random order and evaluates the first
// maxFeatures that are not constant within idx. Constant features do not
// count towards the budget.
func bestSplit(x [][]float64, y []int, idx []int, p treeParams, rng *rand.Rand) (candidateSplit, bool) {
	dim := len(x[idx[0]])
	order := rng.Perm(dim)

	sorted := make([]int, len(idx))
	best := candidateSplit{impurity: math.Inf(1)}
	found := false
	tried := 0

	for _, f := range order {
		if tried >= p.maxFeatures {
			break
		}

		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})
		if x[sorted[0]][f] == x[sorted[len(sorted)-1]][f] {
			continue
		}
		tried++

		if c, ok := scanFeature(x, y, sorted, f, p.minLeaf); ok && c.impurity < best.impurity {
			best = c
			found = true
		}
	}

	return best, found
}

// scanFeature sweeps the samples sorted on feature f and returns the split
// with the lowest weighted Gini impurity.
func scanFeature(x [][]float64, y []int, sorted []int, f int, minLeaf int) (candidateSplit, bool) {
	n := len(sorted)
	totalPos := 0
	for _, i := range sorted {
		totalPos += y[i]
	}

	best := candidateSplit{feature: f, impurity: math.Inf(1)}
	found := false
	leftPos := 0

	for s := 1; s < n; s++ {
		leftPos += y[sorted[s-1]]

		lo, hi := x[sorted[s-1]][f], x[sorted[s]][f]
		if lo == hi {
			continue
		}
		if s < minLeaf || n-s < minLeaf {
			continue
		}

		impurity := weightedGini(leftPos, s, totalPos-leftPos, n-s)
		if impurity < best.impurity {
			best.impurity = impurity
			best.threshold = lo + (hi-lo)/2
			if best.threshold >= hi {
				best.threshold = lo
			}
			found = true
		}
	}

	return best, found
}

// weightedGini returns the size-weighted Gini impurity of a two-way split.
func weightedGini(leftPos, leftN, rightPos, rightN int) float64 {
	total := float64(leftN + rightN)
	return float64(leftN)/total*gini(leftPos, leftN) + float64(rightN)/total*gini(rightPos, rightN)
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}
