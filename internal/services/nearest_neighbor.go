package services

import "math"

// NearestNeighborOrder builds a visiting order greedily.
//
// dist is the (n+2)x(n+2) pairwise matrix: index 0 is the start, index n+1 the
// end, 1..n the stops. From the current position the closest unvisited stop is
// taken next; ties go to the stop listed first. The end is appended last.
func NearestNeighborOrder(dist [][]float64) []int {
	last := len(dist) - 1
	if last < 1 {
		return []int{0}
	}

	visited := make([]bool, len(dist))
	order := make([]int, 0, len(dist))
	order = append(order, 0)

	current := 0
	for step := 1; step < last; step++ {
		best := -1
		minDist := math.Inf(1)

		// Strict comparison keeps the earliest stop on equal distance.
		for s := 1; s < last; s++ {
			if visited[s] {
				continue
			}
			if d := dist[current][s]; best == -1 || d < minDist {
				best, minDist = s, d
			}
		}

		visited[best] = true
		order = append(order, best)
		current = best
	}

	return append(order, last)
}

// orderLength sums the matrix distances along order.
func orderLength(order []int, dist [][]float64) float64 {
	total := 0.0
	for i := 1; i < len(order); i++ {
		total += dist[order[i-1]][order[i]]
	}
	return total
}

// inputOrder is the trivial baseline 0, 1, ..., n+1.
func inputOrder(size int) []int {
	order := make([]int, size)
	for i := range order {
		order[i] = i
	}
	return order
}
