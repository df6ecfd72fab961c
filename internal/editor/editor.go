// Package editor implements the structural operations on a cloth graph:
// creating and deleting points, connecting and cutting links, pinning, and
// picking the point or link under a cursor.
package editor

import (
	"math"

	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Editor mutates a graph.Store while keeping it free of dangling links.
type Editor struct {
	store *graph.Store
}

func New(store *graph.Store) *Editor {
	return &Editor{store: store}
}

func (e *Editor) Store() *graph.Store { return e.store }

// AddFreePoint creates an unpinned point with zero initial velocity.
func (e *Editor) AddFreePoint(pos r2.Vec) graph.PointID {
	return e.store.AddPoint(pos)
}

// DeletePoint removes the point together with every incident link. The
// removed links are returned in incidence order.
func (e *Editor) DeletePoint(id graph.PointID) ([]graph.LinkID, error) {
	if !e.store.HasPoint(id) {
		return nil, graph.ErrPointNotFound
	}
	incident := e.store.IncidentLinks(id)
	for _, l := range incident {
		if _, err := e.store.RemoveLink(l); err != nil {
			return nil, err
		}
	}
	if err := e.store.RemovePoint(id); err != nil {
		return nil, err
	}
	return incident, nil
}

// Connect links a and b with a rest length equal to their current distance.
func (e *Editor) Connect(a, b graph.PointID) (graph.LinkID, error) {
	pa, ok := e.store.Point(a)
	if !ok {
		return graph.LinkID{}, graph.ErrPointNotFound
	}
	pb, ok := e.store.Point(b)
	if !ok {
		return graph.LinkID{}, graph.ErrPointNotFound
	}
	return e.store.AddLink(a, b, dynamo.Distance(pa.Position, pb.Position))
}

// DeleteLink removes the link and then prunes each former endpoint that is
// left without links. Pruned points are returned (A before B).
func (e *Editor) DeleteLink(id graph.LinkID) ([]graph.PointID, error) {
	l, err := e.store.RemoveLink(id)
	if err != nil {
		return nil, err
	}
	var pruned []graph.PointID
	for _, end := range [2]graph.PointID{l.A, l.B} {
		if e.store.HasPoint(end) && e.store.Degree(end) == 0 {
			if err := e.store.RemovePoint(end); err != nil {
				return pruned, err
			}
			pruned = append(pruned, end)
		}
	}
	return pruned, nil
}

// TogglePin flips the pinned flag and returns the new value.
func (e *Editor) TogglePin(id graph.PointID) (bool, error) {
	p := e.store.PointRef(id)
	if p == nil {
		return false, graph.ErrPointNotFound
	}
	p.Pinned = !p.Pinned
	return p.Pinned, nil
}

// FindNearestPoint returns the first point in insertion order within radius
// of pos. It is deliberately first-match rather than closest-match.
func (e *Editor) FindNearestPoint(pos r2.Vec, radius float64) (graph.PointID, bool) {
	for _, id := range e.store.Points() {
		p, _ := e.store.Point(id)
		if dynamo.Distance(pos, p.Position) <= radius {
			return id, true
		}
	}
	return graph.PointID{}, false
}

// FindNearestLink returns the first link in insertion order for which
// |len(A,B) - (dist(pos,A) + dist(pos,B))| < tolerance, i.e. pos lies inside
// a thin ellipse with foci at the endpoints.
func (e *Editor) FindNearestLink(pos r2.Vec, tolerance float64) (graph.LinkID, bool) {
	var (
		found graph.LinkID
		hit   bool
	)
	e.store.EachLink(func(id graph.LinkID, _ graph.Link, a, b *graph.Point) {
		if hit {
			return
		}
		length := dynamo.Distance(a.Position, b.Position)
		via := dynamo.Distance(pos, a.Position) + dynamo.Distance(pos, b.Position)
		if math.Abs(length-via) < tolerance {
			found, hit = id, true
		}
	})
	return found, hit
}
