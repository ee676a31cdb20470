package services

// Sequencer decides the visiting order of a trip from its pairwise distance
// matrix. Index 0 is the start, len(dist)-1 the end; the returned order starts
// and ends with them and visits every other index exactly once.
type Sequencer interface {
	Order(dist [][]float64) []int
}

// HeuristicSequencer runs nearest-neighbor construction followed by 2-opt.
//
// 2-opt is also applied to the input order and the shorter result wins (the
// nearest-neighbor result on a tie), so the returned order is never longer
// than visiting the stops as listed. There is no worst-case bound relative
// to the optimum beyond that baseline.
type HeuristicSequencer struct {
	MaxPasses int
}

func (h HeuristicSequencer) Order(dist [][]float64) []int {
	nn := NearestNeighborOrder(dist)
	TwoOpt(nn, dist, h.MaxPasses)

	baseline := inputOrder(len(dist))
	TwoOpt(baseline, dist, h.MaxPasses)

	if orderLength(baseline, dist) < orderLength(nn, dist)-improvementEpsilon {
		return baseline
	}
	return nn
}

// ExactSequencer returns an optimal order. Cost grows as 2^n, so it is only
// used for short lists.
type ExactSequencer struct{}

func (ExactSequencer) Order(dist [][]float64) []int { return heldKarpOrder(dist) }

// AutoSequencer orders exactly when the trip has at most Limit stops and falls
// back to Heuristic otherwise.
type AutoSequencer struct {
	Limit     int
	Heuristic HeuristicSequencer
}

func (a AutoSequencer) Order(dist [][]float64) []int {
	if len(dist)-2 <= a.Limit {
		return ExactSequencer{}.Order(dist)
	}
	return a.Heuristic.Order(dist)
}

// NewSequencer builds the default sequencer from the engine constants.
func NewSequencer(cfg EngineConfig) Sequencer {
	return AutoSequencer{
		Limit:     cfg.ExactLimit,
		Heuristic: HeuristicSequencer{MaxPasses: cfg.TwoOptMaxPasses},
	}
}
