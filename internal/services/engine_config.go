package services

// EngineConfig holds the fixed routing constants. They are process-wide and
// never taken from request input.
type EngineConfig struct {
	// Distance, in floor-plan units, by which obstacle corners are pushed out
	// when they become visibility-graph nodes.
	ClearanceMargin float64
	// Maximum distance a query point may be moved to reach walkable space.
	SnapRadius float64

	DefaultMetersPerUnit        float64
	WalkingSpeedMetersPerMinute float64

	TwoOptMaxPasses int
	// Trips with at most this many waypoints are ordered exactly.
	ExactLimit int
	// Concurrent rows while filling the pairwise distance matrix.
	MatrixWorkers int
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ClearanceMargin:             2,
		SnapRadius:                  12,
		DefaultMetersPerUnit:        0.05,
		WalkingSpeedMetersPerMinute: 60,
		TwoOptMaxPasses:             100,
		ExactLimit:                  8,
		MatrixWorkers:               4,
	}
}
