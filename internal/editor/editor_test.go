package editor

import (
	"errors"
	"testing"

	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

func chain(t *testing.T) (*Editor, [3]graph.PointID, [2]graph.LinkID) {
	t.Helper()
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{X: 0})
	b := e.AddFreePoint(r2.Vec{X: 10})
	c := e.AddFreePoint(r2.Vec{X: 20})
	ab, err := e.Connect(a, b)
	if err != nil {
		t.Fatalf("connect a-b: %v", err)
	}
	bc, err := e.Connect(b, c)
	if err != nil {
		t.Fatalf("connect b-c: %v", err)
	}
	return e, [3]graph.PointID{a, b, c}, [2]graph.LinkID{ab, bc}
}

func TestConnectRestLength(t *testing.T) {
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{X: 1, Y: 1})
	b := e.AddFreePoint(r2.Vec{X: 4, Y: 5})

	id, err := e.Connect(a, b)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	l, _ := e.Store().Link(id)
	if l.Rest != 5 {
		t.Errorf("rest length = %v, want 5", l.Rest)
	}

	// moving an endpoint must not change the rest length
	e.Store().PointRef(b).Position = r2.Vec{X: 100, Y: 100}
	l, _ = e.Store().Link(id)
	if l.Rest != 5 {
		t.Errorf("rest length changed to %v", l.Rest)
	}
}

func TestDeleteLinkPrunesOrphans(t *testing.T) {
	e, p, l := chain(t)
	a, b, c := p[0], p[1], p[2]

	pruned, err := e.DeleteLink(l[1])
	if err != nil {
		t.Fatalf("delete link failed: %v", err)
	}
	if len(pruned) != 1 || pruned[0] != c {
		t.Errorf("pruned = %v, want [%v]", pruned, c)
	}

	s := e.Store()
	if s.HasLink(l[1]) {
		t.Error("link b-c still present")
	}
	if s.HasPoint(c) {
		t.Error("orphan c not pruned")
	}
	if !s.HasPoint(b) || !s.HasPoint(a) {
		t.Error("a and b must survive: they still share a-b")
	}
	if !s.HasLink(l[0]) {
		t.Error("link a-b removed")
	}
}

func TestDeleteLastLinkPrunesBoth(t *testing.T) {
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{})
	b := e.AddFreePoint(r2.Vec{X: 3})
	id, _ := e.Connect(a, b)

	pruned, err := e.DeleteLink(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(pruned) != 2 || pruned[0] != a || pruned[1] != b {
		t.Errorf("pruned = %v, want [%v %v]", pruned, a, b)
	}
	if e.Store().NumPoints() != 0 {
		t.Errorf("expected empty graph, %d points remain", e.Store().NumPoints())
	}
}

func TestDeleteLinkKeepsDuplicatePair(t *testing.T) {
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{})
	b := e.AddFreePoint(r2.Vec{X: 3})
	first, _ := e.Connect(a, b)
	if _, err := e.Connect(a, b); err != nil {
		t.Fatal(err)
	}

	pruned, err := e.DeleteLink(first)
	if err != nil {
		t.Fatal(err)
	}
	if len(pruned) != 0 {
		t.Errorf("points pruned while a duplicate link remains: %v", pruned)
	}
}

func TestDeletePointCascades(t *testing.T) {
	e, p, l := chain(t)

	removed, err := e.DeletePoint(p[1])
	if err != nil {
		t.Fatalf("delete point failed: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 links removed, got %v", removed)
	}

	s := e.Store()
	if s.HasLink(l[0]) || s.HasLink(l[1]) {
		t.Error("incident links survived point deletion")
	}
	// DeletePoint never prunes neighbours
	if !s.HasPoint(p[0]) || !s.HasPoint(p[2]) {
		t.Error("neighbouring points removed")
	}
	if s.NumLinks() != 0 {
		t.Errorf("expected 0 links, got %d", s.NumLinks())
	}
}

func TestDanglingHandles(t *testing.T) {
	e, p, l := chain(t)
	if _, err := e.DeleteLink(l[1]); err != nil {
		t.Fatal(err)
	}

	if _, err := e.DeleteLink(l[1]); !errors.Is(err, graph.ErrLinkNotFound) {
		t.Errorf("DeleteLink(stale) = %v, want ErrLinkNotFound", err)
	}
	if _, err := e.DeletePoint(p[2]); !errors.Is(err, graph.ErrPointNotFound) {
		t.Errorf("DeletePoint(stale) = %v, want ErrPointNotFound", err)
	}
	if _, err := e.TogglePin(p[2]); !errors.Is(err, graph.ErrPointNotFound) {
		t.Errorf("TogglePin(stale) = %v, want ErrPointNotFound", err)
	}
	if _, err := e.Connect(p[0], p[2]); !errors.Is(err, graph.ErrPointNotFound) {
		t.Errorf("Connect(stale) = %v, want ErrPointNotFound", err)
	}
}

func TestTogglePinIdempotent(t *testing.T) {
	e := New(graph.New())
	id := e.AddFreePoint(r2.Vec{})

	first, err := e.TogglePin(id)
	if err != nil || !first {
		t.Fatalf("first toggle = %v, %v; want true, nil", first, err)
	}
	second, _ := e.TogglePin(id)
	if second {
		t.Error("second toggle should restore unpinned state")
	}
	p, _ := e.Store().Point(id)
	if p.Pinned {
		t.Error("point still pinned after two toggles")
	}
}

func TestFindNearestPoint(t *testing.T) {
	e := New(graph.New())
	id := e.AddFreePoint(r2.Vec{X: 100, Y: 100})

	tests := []struct {
		name  string
		query r2.Vec
		found bool
	}{
		{"inside radius", r2.Vec{X: 102, Y: 102}, true},
		{"on radius", r2.Vec{X: 104, Y: 100}, true},
		{"outside radius", r2.Vec{X: 105, Y: 105}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.FindNearestPoint(tt.query, 4)
			if ok != tt.found {
				t.Fatalf("FindNearestPoint(%v) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && got != id {
				t.Errorf("FindNearestPoint(%v) = %v, want %v", tt.query, got, id)
			}
		})
	}
}

func TestFindNearestPointFirstMatch(t *testing.T) {
	e := New(graph.New())
	far := e.AddFreePoint(r2.Vec{X: 3})
	e.AddFreePoint(r2.Vec{X: 0.5})

	got, ok := e.FindNearestPoint(r2.Vec{}, 4)
	if !ok || got != far {
		t.Errorf("expected first point in insertion order %v, got %v", far, got)
	}
}

func TestFindNearestLink(t *testing.T) {
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{X: 0, Y: 0})
	b := e.AddFreePoint(r2.Vec{X: 100, Y: 0})
	id, _ := e.Connect(a, b)

	tests := []struct {
		name  string
		query r2.Vec
		found bool
	}{
		{"on segment", r2.Vec{X: 50, Y: 0}, true},
		{"just off middle", r2.Vec{X: 50, Y: 5}, true}, // 2*sqrt(2525)-100 ~ 0.499
		{"far off middle", r2.Vec{X: 50, Y: 15}, false}, // excess ~4.4
		{"beyond endpoint", r2.Vec{X: 101.5, Y: 0}, false}, // excess 3
		{"near endpoint", r2.Vec{X: 100.5, Y: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.FindNearestLink(tt.query, 2)
			if ok != tt.found {
				t.Fatalf("FindNearestLink(%v) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && got != id {
				t.Errorf("FindNearestLink(%v) = %v, want %v", tt.query, got, id)
			}
		})
	}
}

func TestFindNearestLinkFirstMatch(t *testing.T) {
	e := New(graph.New())
	a := e.AddFreePoint(r2.Vec{X: 0})
	b := e.AddFreePoint(r2.Vec{X: 10})
	first, _ := e.Connect(a, b)
	e.Connect(b, a)

	got, ok := e.FindNearestLink(r2.Vec{X: 5}, 2)
	if !ok || got != first {
		t.Errorf("expected first link %v, got %v", first, got)
	}
}
