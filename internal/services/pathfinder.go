package services

import (
	"container/heap"
	"fmt"
	"math"
	"store-route-service/internal/domain"
)

// frontierItem is an entry in the A* open set. seq records discovery order so
// that equal-cost entries pop first-in first-out.
type frontierItem struct {
	node int
	f    float64
	seq  int
}

type frontier []frontierItem

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(frontierItem)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath finds the shortest obstacle-free route between two points of g.
// Both points must have been added when g was built.
//
// A* with Euclidean edge cost and Euclidean heuristic; the heuristic is
// consistent on a visibility graph so a node is final once popped. Stale
// frontier entries are skipped rather than decreased in place.
func ShortestPath(g *VisibilityGraph, from, to domain.Point) (domain.Route, error) {
	src, ok := g.NodeOf(from)
	if !ok {
		return domain.Route{}, fmt.Errorf("shortest path: %v is not a graph node: %w", from, domain.ErrInvalidPoint)
	}
	dst, ok := g.NodeOf(to)
	if !ok {
		return domain.Route{}, fmt.Errorf("shortest path: %v is not a graph node: %w", to, domain.ErrInvalidPoint)
	}

	if src == dst {
		return domain.Route{Points: []domain.Point{from}}, nil
	}

	goal := g.Nodes[dst]
	n := len(g.Nodes)

	gScore := make([]float64, n)
	parent := make([]int, n)
	closed := make([]bool, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		parent[i] = -1
	}

	seq := 0
	open := &frontier{}
	gScore[src] = 0
	heap.Push(open, frontierItem{node: src, f: g.Nodes[src].Distance(goal), seq: seq})

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)
		if closed[cur.node] {
			continue
		}
		closed[cur.node] = true

		if cur.node == dst {
			return buildRoute(g, parent, dst, gScore[dst]), nil
		}

		for _, e := range g.adj[cur.node] {
			if closed[e.to] {
				continue
			}
			tentative := gScore[cur.node] + e.cost
			if tentative >= gScore[e.to] {
				continue
			}
			gScore[e.to] = tentative
			parent[e.to] = cur.node
			seq++
			heap.Push(open, frontierItem{
				node: e.to,
				f:    tentative + g.Nodes[e.to].Distance(goal),
				seq:  seq,
			})
		}
	}

	return domain.Route{}, fmt.Errorf("shortest path: %v -> %v: %w", from, to, domain.ErrNotReachable)
}

func buildRoute(g *VisibilityGraph, parent []int, dst int, length float64) domain.Route {
	var points []domain.Point
	for cur := dst; cur != -1; cur = parent[cur] {
		points = append(points, g.Nodes[cur])
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	return domain.Route{
		Points:      simplifyCollinear(points),
		LengthUnits: length,
	}
}

// simplifyCollinear drops intermediate points lying on the straight segment
// between their neighbours. The remaining segments cover exactly the same
// ground, so obstacle avoidance is unchanged.
func simplifyCollinear(points []domain.Point) []domain.Point {
	if len(points) < 3 {
		return points
	}

	out := make([]domain.Point, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points)-1; i++ {
		a := out[len(out)-1]
		b := points[i]
		c := points[i+1]
		if collinearBetween(a, b, c) {
			continue
		}
		out = append(out, b)
	}
	return append(out, points[len(points)-1])
}

func collinearBetween(a, b, c domain.Point) bool {
	abx, aby := b.X-a.X, b.Y-a.Y
	acx, acy := c.X-a.X, c.Y-a.Y

	cross := abx*acy - aby*acx
	scale := math.Hypot(abx, aby) * math.Hypot(acx, acy)
	if math.Abs(cross) > 1e-9*scale {
		return false
	}
	// b must lie between a and c, not beyond either end.
	return abx*acx+aby*acy >= 0 && math.Hypot(abx, aby) <= math.Hypot(acx, acy)
}

// reverseRoute returns r walked in the opposite direction.
func reverseRoute(r domain.Route) domain.Route {
	pts := make([]domain.Point, len(r.Points))
	for i, p := range r.Points {
		pts[len(pts)-1-i] = p
	}
	r.Points = pts
	return r
}
