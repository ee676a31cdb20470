package services

// improvementEpsilon ignores reversals that only win by float noise, which
// would otherwise let 2-opt cycle between equivalent orders.
const improvementEpsilon = 1e-9

// TwoOpt improves order in place by reversing segments while that shortens
// the path. The first and last entries stay fixed. Each pass scans (i, j) in
// ascending order and applies every improving reversal it meets; passes repeat
// until one makes no change or maxPasses is reached. Returns the passes run.
//
// dist must be symmetric: a reversed segment is walked backwards.
func TwoOpt(order []int, dist [][]float64, maxPasses int) int {
	last := len(order) - 1
	if last < 3 {
		return 0
	}

	passes := 0
	for improved := true; improved && passes < maxPasses; {
		improved = false
		passes++

		for i := 1; i < last-1; i++ {
			for j := i + 1; j < last; j++ {
				a, b := order[i-1], order[i]
				c, d := order[j], order[j+1]

				delta := dist[a][c] + dist[b][d] - dist[a][b] - dist[c][d]
				if delta < -improvementEpsilon {
					reverseSegment(order, i, j)
					improved = true
				}
			}
		}
	}

	return passes
}

func reverseSegment(order []int, i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
}
