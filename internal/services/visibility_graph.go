package services

import (
	"store-route-service/internal/domain"
)

type graphEdge struct {
	to   int
	cost float64
}

// VisibilityGraph connects request points and inflated obstacle corners with
// every unobstructed straight segment between them. It is built per request
// and is read-only once built, so concurrent searches may share it.
type VisibilityGraph struct {
	Nodes []domain.Point

	adj    [][]graphEdge
	index  map[domain.Point]int
	rects  []domain.Rect
	bounds domain.Bounds
}

// BuildVisibilityGraph adds the given points first, in order, followed by the
// corners of each obstacle inflated by margin. Corners that fall outside the
// bounds or inside any obstacle are dropped; duplicate positions share a node.
func BuildVisibilityGraph(plan *domain.FloorPlan, margin float64, points []domain.Point) *VisibilityGraph {
	g := &VisibilityGraph{
		index:  make(map[domain.Point]int, len(points)+4*len(plan.Obstacles)),
		rects:  make([]domain.Rect, 0, len(plan.Obstacles)),
		bounds: plan.Bounds,
	}
	for _, o := range plan.Obstacles {
		g.rects = append(g.rects, o.Rect())
	}

	for _, p := range points {
		g.addNode(p)
	}

	for _, r := range g.rects {
		for _, c := range r.Inflate(margin).Corners() {
			if !domain.InsideBounds(c, g.bounds) || g.blocked(c) {
				continue
			}
			g.addNode(c)
		}
	}

	g.adj = make([][]graphEdge, len(g.Nodes))
	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			if !g.Visible(g.Nodes[i], g.Nodes[j]) {
				continue
			}
			d := g.Nodes[i].Distance(g.Nodes[j])
			g.adj[i] = append(g.adj[i], graphEdge{to: j, cost: d})
			g.adj[j] = append(g.adj[j], graphEdge{to: i, cost: d})
		}
	}

	return g
}

func (g *VisibilityGraph) addNode(p domain.Point) {
	if _, ok := g.index[p]; ok {
		return
	}
	g.index[p] = len(g.Nodes)
	g.Nodes = append(g.Nodes, p)
}

// NodeOf returns the node index of p.
func (g *VisibilityGraph) NodeOf(p domain.Point) (int, bool) {
	i, ok := g.index[p]
	return i, ok
}

// Visible reports whether the straight segment a-b avoids every obstacle.
func (g *VisibilityGraph) Visible(a, b domain.Point) bool {
	for _, r := range g.rects {
		if domain.SegmentIntersectsRect(a, b, r) {
			return false
		}
	}
	return true
}

func (g *VisibilityGraph) blocked(p domain.Point) bool {
	for _, r := range g.rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of undirected edges.
func (g *VisibilityGraph) EdgeCount() int {
	n := 0
	for _, e := range g.adj {
		n += len(e)
	}
	return n / 2
}
