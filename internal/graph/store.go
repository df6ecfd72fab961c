package graph

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// PointID is a stable handle to a Point. The zero value never resolves.
type PointID struct {
	index uint32
	gen   uint32
}

// LinkID is a stable handle to a Link. The zero value never resolves.
type LinkID struct {
	index uint32
	gen   uint32
}

func (id PointID) IsZero() bool { return id.gen == 0 }
func (id LinkID) IsZero() bool  { return id.gen == 0 }

func (id PointID) String() string { return fmt.Sprintf("p%d.%d", id.index, id.gen) }
func (id LinkID) String() string  { return fmt.Sprintf("l%d.%d", id.index, id.gen) }

// Point is a simulated mass. Velocity is implicit in Position - Previous.
type Point struct {
	Position r2.Vec
	Previous r2.Vec
	Pinned   bool
}

// Link keeps two points at Rest distance. Rest never changes after creation.
type Link struct {
	A, B PointID
	Rest float64
}

type pointSlot struct {
	point    Point
	gen      uint32
	live     bool
	incident []LinkID
}

type linkSlot struct {
	link Link
	gen  uint32
	live bool
}

// Store owns every point and link of one cloth.
type Store struct {
	points     []pointSlot
	links      []linkSlot
	freePoints []uint32
	freeLinks  []uint32
	pointOrder []uint32
	linkOrder  []uint32
}

func New() *Store {
	return &Store{}
}

// AddPoint inserts an unpinned point at rest (Previous == Position).
func (s *Store) AddPoint(pos r2.Vec) PointID {
	p := Point{Position: pos, Previous: pos}
	var idx uint32
	if n := len(s.freePoints); n > 0 {
		idx = s.freePoints[n-1]
		s.freePoints = s.freePoints[:n-1]
	} else {
		idx = uint32(len(s.points))
		s.points = append(s.points, pointSlot{})
	}
	slot := &s.points[idx]
	slot.gen++
	slot.live = true
	slot.point = p
	slot.incident = slot.incident[:0]
	s.pointOrder = append(s.pointOrder, idx)
	return PointID{index: idx, gen: slot.gen}
}

// AddLink connects a and b. Duplicate links between the same pair are allowed.
func (s *Store) AddLink(a, b PointID, rest float64) (LinkID, error) {
	if !s.HasPoint(a) {
		return LinkID{}, fmt.Errorf("endpoint %s: %w", a, ErrPointNotFound)
	}
	if !s.HasPoint(b) {
		return LinkID{}, fmt.Errorf("endpoint %s: %w", b, ErrPointNotFound)
	}
	if a == b {
		return LinkID{}, ErrSelfLink
	}
	if rest < 0 || math.IsNaN(rest) || math.IsInf(rest, 0) {
		return LinkID{}, fmt.Errorf("%v: %w", rest, ErrRestLength)
	}

	var idx uint32
	if n := len(s.freeLinks); n > 0 {
		idx = s.freeLinks[n-1]
		s.freeLinks = s.freeLinks[:n-1]
	} else {
		idx = uint32(len(s.links))
		s.links = append(s.links, linkSlot{})
	}
	slot := &s.links[idx]
	slot.gen++
	slot.live = true
	slot.link = Link{A: a, B: b, Rest: rest}
	s.linkOrder = append(s.linkOrder, idx)

	id := LinkID{index: idx, gen: slot.gen}
	s.points[a.index].incident = append(s.points[a.index].incident, id)
	s.points[b.index].incident = append(s.points[b.index].incident, id)
	return id, nil
}

// RemovePoint deletes a point with no incident links. Use the editor's
// cascading delete for points that are still connected.
func (s *Store) RemovePoint(id PointID) error {
	slot := s.pointSlot(id)
	if slot == nil {
		return ErrPointNotFound
	}
	if len(slot.incident) > 0 {
		return fmt.Errorf("point %s has %d links: %w", id, len(slot.incident), ErrPointInUse)
	}
	slot.live = false
	slot.point = Point{}
	s.pointOrder = removeIndex(s.pointOrder, id.index)
	s.freePoints = append(s.freePoints, id.index)
	return nil
}

// RemoveLink deletes a link and detaches it from both endpoints. The removed
// link is returned so callers can inspect its former endpoints.
func (s *Store) RemoveLink(id LinkID) (Link, error) {
	slot := s.linkSlot(id)
	if slot == nil {
		return Link{}, ErrLinkNotFound
	}
	l := slot.link
	for _, end := range [2]PointID{l.A, l.B} {
		if ps := s.pointSlot(end); ps != nil {
			ps.incident = slices.DeleteFunc(ps.incident, func(x LinkID) bool { return x == id })
		}
	}
	slot.live = false
	slot.link = Link{}
	s.linkOrder = removeIndex(s.linkOrder, id.index)
	s.freeLinks = append(s.freeLinks, id.index)
	return l, nil
}

func (s *Store) HasPoint(id PointID) bool { return s.pointSlot(id) != nil }
func (s *Store) HasLink(id LinkID) bool   { return s.linkSlot(id) != nil }

// Point returns a copy of the point behind id.
func (s *Store) Point(id PointID) (Point, bool) {
	slot := s.pointSlot(id)
	if slot == nil {
		return Point{}, false
	}
	return slot.point, true
}

// PointRef returns a mutable reference, or nil for a dangling handle.
// The reference is invalidated by the next AddPoint.
func (s *Store) PointRef(id PointID) *Point {
	slot := s.pointSlot(id)
	if slot == nil {
		return nil
	}
	return &slot.point
}

func (s *Store) Link(id LinkID) (Link, bool) {
	slot := s.linkSlot(id)
	if slot == nil {
		return Link{}, false
	}
	return slot.link, true
}

// Points returns the live point handles in insertion order.
func (s *Store) Points() []PointID {
	ids := make([]PointID, len(s.pointOrder))
	for i, idx := range s.pointOrder {
		ids[i] = PointID{index: idx, gen: s.points[idx].gen}
	}
	return ids
}

// Links returns the live link handles in insertion order.
func (s *Store) Links() []LinkID {
	ids := make([]LinkID, len(s.linkOrder))
	for i, idx := range s.linkOrder {
		ids[i] = LinkID{index: idx, gen: s.links[idx].gen}
	}
	return ids
}

// IncidentLinks returns the links touching id, oldest first.
func (s *Store) IncidentLinks(id PointID) []LinkID {
	slot := s.pointSlot(id)
	if slot == nil {
		return nil
	}
	return slices.Clone(slot.incident)
}

func (s *Store) Degree(id PointID) int {
	slot := s.pointSlot(id)
	if slot == nil {
		return 0
	}
	return len(slot.incident)
}

func (s *Store) NumPoints() int { return len(s.pointOrder) }
func (s *Store) NumLinks() int  { return len(s.linkOrder) }

// EachPoint calls fn for every live point in insertion order. fn may mutate
// the point but must not add or remove entities.
func (s *Store) EachPoint(fn func(id PointID, p *Point)) {
	for _, idx := range s.pointOrder {
		slot := &s.points[idx]
		fn(PointID{index: idx, gen: slot.gen}, &slot.point)
	}
}

// EachLink calls fn for every live link in insertion order with mutable
// references to both endpoints. fn must not add or remove entities.
func (s *Store) EachLink(fn func(id LinkID, l Link, a, b *Point)) {
	for _, idx := range s.linkOrder {
		slot := &s.links[idx]
		l := slot.link
		fn(LinkID{index: idx, gen: slot.gen}, l, &s.points[l.A.index].point, &s.points[l.B.index].point)
	}
}

// Clear drops every entity. Handles issued before Clear never resolve again.
func (s *Store) Clear() {
	for _, idx := range s.pointOrder {
		slot := &s.points[idx]
		slot.live = false
		slot.point = Point{}
		slot.incident = slot.incident[:0]
		s.freePoints = append(s.freePoints, idx)
	}
	for _, idx := range s.linkOrder {
		slot := &s.links[idx]
		slot.live = false
		slot.link = Link{}
		s.freeLinks = append(s.freeLinks, idx)
	}
	s.pointOrder = s.pointOrder[:0]
	s.linkOrder = s.linkOrder[:0]
}

func (s *Store) pointSlot(id PointID) *pointSlot {
	if id.gen == 0 || int(id.index) >= len(s.points) {
		return nil
	}
	slot := &s.points[id.index]
	if !slot.live || slot.gen != id.gen {
		return nil
	}
	return slot
}

func (s *Store) linkSlot(id LinkID) *linkSlot {
	if id.gen == 0 || int(id.index) >= len(s.links) {
		return nil
	}
	slot := &s.links[id.index]
	if !slot.live || slot.gen != id.gen {
		return nil
	}
	return slot
}

func removeIndex(order []uint32, idx uint32) []uint32 {
	if i := slices.Index(order, idx); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}
