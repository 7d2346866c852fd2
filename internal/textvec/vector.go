package textvec

import "math"

// Vector is a sparse vector over a fitted term space. Indices are strictly
// increasing.
type Vector struct {
	indices []int
	values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v Vector) IsZero() bool {
	return len(v.indices) == 0
}

// Get returns the weight stored for the term column, or zero.
func (v Vector) Get(column int) float64 {
	lo, hi := 0, len(v.indices)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case v.indices[mid] == column:
			return v.values[mid]
		case v.indices[mid] < column:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Norm returns the euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(other Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(other.indices) {
		switch {
		case v.indices[i] == other.indices[j]:
			sum += v.values[i] * other.values[j]
			i++
			j++
		case v.indices[i] < other.indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b. Zero vectors yield 0.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	values := make([]float64, len(v.values))
	for i, x := range v.values {
		values[i] = x / n
	}
	return Vector{indices: v.indices, values: values}
}
