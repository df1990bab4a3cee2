// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

package features

import (
	"math"
	"sort"
)

// Vector is a sparse feature vector over a fixed vocabulary.
// Indices are strictly ascending and Values holds the matching non-zero
// coordinates. A Vector is immutable once built.
type Vector struct {
	Indices []int
	Values  []float64
	normSq  float64
}

// newVector builds a vector from index/value pairs that are already sorted
// by index and free of duplicates.
func newVector(indices []int, values []float64) Vector {
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	return Vector{Indices: indices, Values: values, normSq: sum}
}

// NNZ returns the number of non-zero coordinates.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the Euclidean magnitude.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.normSq)
}

// Dot returns the inner product, walking both index lists in order.
func (v Vector) Dot(o Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			dot += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Cosine returns the cosine similarity of v and o.
// A zero-magnitude operand yields 0.
func Cosine(v, o Vector) float64 {
	if v.normSq == 0 || o.normSq == 0 {
		return 0
	}
	return v.Dot(o) / math.Sqrt(v.normSq*o.normSq)
}

// Average returns the coordinate-wise mean of vs, each weighted equally.
// Coordinates are summed in argument order so the result is reproducible.
func Average(vs ...Vector) Vector {
	if len(vs) == 0 {
		return Vector{}
	}

	sums := make(map[int]float64)
	for _, v := range vs {
		for k, idx := range v.Indices {
			sums[idx] += v.Values[k]
		}
	}

	indices := make([]int, 0, len(sums))
	for idx, s := range sums {
		if s != 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	n := float64(len(vs))
	values := make([]float64, len(indices))
	for k, idx := range indices {
		values[k] = sums[idx] / n
	}
	return newVector(indices, values)
}

// Dense expands the vector to a slice of length dim.
func (v Vector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for k, idx := range v.Indices {
		if idx < dim {
			out[idx] = v.Values[k]
		}
	}
	return out
}
