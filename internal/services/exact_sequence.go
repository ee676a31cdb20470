package services

import "math"

// heldKarpOrder returns an optimal visiting order for the matrix using the
// Held-Karp subset DP: O(2^n * n^2) time, O(2^n * n) memory. Ties go to the
// lower stop index so the result is deterministic.
func heldKarpOrder(dist [][]float64) []int {
	size := len(dist)
	if size <= 2 {
		return inputOrder(size)
	}

	n := size - 2 // stops 1..n
	end := size - 1
	full := 1<<n - 1

	cost := make([][]float64, 1<<n)
	prev := make([][]int, 1<<n)
	for mask := range cost {
		cost[mask] = make([]float64, n)
		prev[mask] = make([]int, n)
		for j := range cost[mask] {
			cost[mask][j] = math.Inf(1)
			prev[mask][j] = -1
		}
	}

	for j := 0; j < n; j++ {
		cost[1<<j][j] = dist[0][j+1]
	}

	for mask := 1; mask <= full; mask++ {
		for j := 0; j < n; j++ {
			if mask&(1<<j) == 0 || math.IsInf(cost[mask][j], 1) {
				continue
			}
			for k := 0; k < n; k++ {
				if mask&(1<<k) != 0 {
					continue
				}
				next := mask | 1<<k
				c := cost[mask][j] + dist[j+1][k+1]
				if c < cost[next][k] {
					cost[next][k] = c
					prev[next][k] = j
				}
			}
		}
	}

	bestLast := -1
	best := math.Inf(1)
	for j := 0; j < n; j++ {
		if c := cost[full][j] + dist[j+1][end]; bestLast == -1 || c < best {
			best, bestLast = c, j
		}
	}

	order := make([]int, size)
	order[0], order[end] = 0, end
	mask := full
	for pos, j := n, bestLast; pos >= 1; pos-- {
		order[pos] = j + 1
		pj := prev[mask][j]
		mask &^= 1 << j
		j = pj
	}

	return order
}
