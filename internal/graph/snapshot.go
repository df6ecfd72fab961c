package graph

import "gonum.org/v1/gonum/spatial/r2"

// PointView is the read-only renderer view of a point.
type PointView struct {
	ID       PointID
	Position r2.Vec
	Pinned   bool
}

// LinkView is the read-only renderer view of a link.
type LinkView struct {
	ID   LinkID
	A, B r2.Vec
}

// Snapshot is a detached copy of the graph, safe to keep across ticks.
type Snapshot struct {
	Points []PointView
	Links  []LinkView
}

func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Points: make([]PointView, 0, len(s.pointOrder)),
		Links:  make([]LinkView, 0, len(s.linkOrder)),
	}
	s.EachPoint(func(id PointID, p *Point) {
		snap.Points = append(snap.Points, PointView{ID: id, Position: p.Position, Pinned: p.Pinned})
	})
	s.EachLink(func(id LinkID, _ Link, a, b *Point) {
		snap.Links = append(snap.Links, LinkView{ID: id, A: a.Position, B: b.Position})
	})
	return snap
}
