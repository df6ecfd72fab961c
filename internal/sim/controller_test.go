package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

func newBare() *Controller {
	return New(graph.New(), nil, nil, DefaultOptions())
}

func press(c *Controller, pos r2.Vec)   { c.Tick(Input{Pointer: pos, Primary: true}) }
func release(c *Controller, pos r2.Vec) { c.Tick(Input{Pointer: pos}) }

func TestLatch(t *testing.T) {
	var l Latch
	steps := []struct {
		level    bool
		pressed  bool
		released bool
	}{
		{false, false, false},
		{true, true, false},
		{true, false, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
	}
	for i, s := range steps {
		p, r := l.Update(s.level)
		if p != s.pressed || r != s.released {
			t.Errorf("step %d: Update(%v) = (%v, %v), want (%v, %v)", i, s.level, p, r, s.pressed, s.released)
		}
	}
}

func TestControllerStartsInEdit(t *testing.T) {
	c := newBare()
	if c.Mode() != ModeEdit {
		t.Errorf("Mode() = %v, want edit", c.Mode())
	}
	if c.Drag().Active {
		t.Error("expected no pending drag")
	}
}

func TestClickCreatesPoint(t *testing.T) {
	c := newBare()
	pos := r2.Vec{X: 10, Y: 20}

	press(c, pos)
	press(c, pos)
	if n := c.Store().NumPoints(); n != 1 {
		t.Fatalf("expected 1 point after a held click, got %d", n)
	}
	id := c.Store().Points()[0]
	p, _ := c.Store().Point(id)
	if p.Position != pos || p.Previous != pos || p.Pinned {
		t.Errorf("unexpected new point %+v", p)
	}
}

func TestDragConnect(t *testing.T) {
	c := newBare()
	a := c.Editor().AddFreePoint(r2.Vec{X: 0, Y: 0})
	b := c.Editor().AddFreePoint(r2.Vec{X: 30, Y: 40})

	press(c, r2.Vec{X: 1, Y: 1})
	if d := c.Drag(); !d.Active || d.Source != a {
		t.Fatalf("expected drag from %s, got %+v", a, d)
	}

	mid := r2.Vec{X: 15, Y: 15}
	c.Tick(Input{Pointer: mid, Primary: true})
	f := c.Frame()
	if f.Preview == nil || f.Preview.From != (r2.Vec{}) || f.Preview.To != mid {
		t.Errorf("unexpected preview %+v", f.Preview)
	}
	if len(f.Links) != 0 {
		t.Error("preview must not be stored as a link")
	}

	release(c, r2.Vec{X: 31, Y: 41})
	if c.Drag().Active {
		t.Error("drag still active after release")
	}
	links := c.Store().Links()
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	l, _ := c.Store().Link(links[0])
	if l.A != a || l.B != b || l.Rest != 50 {
		t.Errorf("unexpected link %+v", l)
	}
	if c.Frame().Preview != nil {
		t.Error("preview left behind after commit")
	}
}

func TestDragReleaseCancels(t *testing.T) {
	tests := []struct {
		name string
		at   r2.Vec
	}{
		{"empty space", r2.Vec{X: 200, Y: 200}},
		{"source point", r2.Vec{X: 2, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newBare()
			c.Editor().AddFreePoint(r2.Vec{})
			c.Editor().AddFreePoint(r2.Vec{X: 100})

			press(c, r2.Vec{})
			release(c, tt.at)

			if c.Drag().Active {
				t.Error("drag still active")
			}
			if c.Store().NumLinks() != 0 {
				t.Errorf("expected no links, got %d", c.Store().NumLinks())
			}
			if c.Store().NumPoints() != 2 {
				t.Errorf("expected 2 points, got %d", c.Store().NumPoints())
			}
			if c.Frame().Preview != nil {
				t.Error("expected preview to be discarded")
			}
		})
	}
}

func TestModifierClickDeletesWithCascade(t *testing.T) {
	c := newBare()
	ed := c.Editor()
	a := ed.AddFreePoint(r2.Vec{X: 0})
	b := ed.AddFreePoint(r2.Vec{X: 10})
	cc := ed.AddFreePoint(r2.Vec{X: 20})
	ed.Connect(a, b)
	ed.Connect(b, cc)

	c.Tick(Input{Pointer: r2.Vec{X: 10}, Primary: true, Modifier: true})

	if c.Store().HasPoint(b) {
		t.Error("expected b deleted")
	}
	if c.Store().NumLinks() != 0 {
		t.Errorf("expected incident links removed, %d remain", c.Store().NumLinks())
	}
	if !c.Store().HasPoint(a) || !c.Store().HasPoint(cc) {
		t.Error("point deletion must not prune neighbours")
	}
	if c.Drag().Active {
		t.Error("modifier click must not start a drag")
	}
}

func TestModifierClickOnEmptyIsNoop(t *testing.T) {
	c := newBare()
	c.Tick(Input{Pointer: r2.Vec{X: 50}, Primary: true, Modifier: true})
	if c.Store().NumPoints() != 0 {
		t.Error("modifier click on empty space must not create a point")
	}
}

func TestSecondaryTogglesPin(t *testing.T) {
	c := newBare()
	first := c.Editor().AddFreePoint(r2.Vec{})
	second := c.Editor().AddFreePoint(r2.Vec{X: 1})

	c.Tick(Input{Secondary: true})
	c.Tick(Input{Secondary: true})
	p1, _ := c.Store().Point(first)
	p2, _ := c.Store().Point(second)
	if !p1.Pinned {
		t.Error("expected first point pinned")
	}
	if p2.Pinned {
		t.Error("only the first matching point toggles")
	}

	c.Tick(Input{})
	c.Tick(Input{Secondary: true})
	p1, _ = c.Store().Point(first)
	if p1.Pinned {
		t.Error("second toggle should unpin")
	}
}

func TestToggleMode(t *testing.T) {
	c := newBare()
	levels := []struct {
		toggle bool
		want   Mode
	}{
		{true, ModeSimulate},
		{true, ModeSimulate},
		{false, ModeSimulate},
		{true, ModeEdit},
		{false, ModeEdit},
	}
	for i, l := range levels {
		c.Tick(Input{Toggle: l.toggle})
		if c.Mode() != l.want {
			t.Errorf("tick %d: Mode() = %v, want %v", i, c.Mode(), l.want)
		}
	}
}

func TestToggleCancelsDrag(t *testing.T) {
	c := newBare()
	c.Editor().AddFreePoint(r2.Vec{})
	press(c, r2.Vec{})
	c.Tick(Input{Primary: true, Toggle: true})

	if c.Drag().Active {
		t.Error("entering simulate must cancel the drag")
	}
	if c.Frame().Preview != nil {
		t.Error("preview should be gone")
	}
}

func TestSimulateIgnoresEdits(t *testing.T) {
	c := newBare()
	c.SetMode(ModeSimulate)
	c.Tick(Input{Pointer: r2.Vec{X: 5}, Primary: true})
	c.Tick(Input{Pointer: r2.Vec{X: 5}, Secondary: true})
	if c.Store().NumPoints() != 0 {
		t.Error("clicks must not create points while simulating")
	}
}

func TestEraseOneLinkPerFrame(t *testing.T) {
	c := newBare()
	ed := c.Editor()
	a := ed.AddFreePoint(r2.Vec{X: 0})
	b := ed.AddFreePoint(r2.Vec{X: 10})
	cc := ed.AddFreePoint(r2.Vec{X: 20})
	ab, _ := ed.Connect(a, b)
	ed.Connect(b, cc)
	c.SetMode(ModeSimulate)

	cursor := r2.Vec{X: 10}
	c.Tick(Input{Pointer: cursor, Primary: true})
	if c.Store().HasLink(ab) {
		t.Error("expected first link erased")
	}
	if c.Store().NumLinks() != 1 {
		t.Fatalf("expected exactly one link erased, %d remain", c.Store().NumLinks())
	}
	if c.Store().HasPoint(a) {
		t.Error("orphaned a should be pruned")
	}

	c.Tick(Input{Pointer: cursor, Primary: true})
	if c.Store().NumLinks() != 0 || c.Store().NumPoints() != 0 {
		t.Errorf("expected empty graph, got %d points %d links", c.Store().NumPoints(), c.Store().NumLinks())
	}
}

func TestEraseRequiresHeldButton(t *testing.T) {
	c := newBare()
	ed := c.Editor()
	a := ed.AddFreePoint(r2.Vec{X: 0})
	b := ed.AddFreePoint(r2.Vec{X: 10})
	ed.Connect(a, b)
	c.SetMode(ModeSimulate)

	c.Tick(Input{Pointer: r2.Vec{X: 5}})
	if c.Store().NumLinks() != 1 {
		t.Error("link erased without the button held")
	}
}

func TestBuildDefault(t *testing.T) {
	c, grid, err := Build(config.DefaultConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Store().NumPoints() != 900 {
		t.Errorf("expected 900 points, got %d", c.Store().NumPoints())
	}
	if c.Store().NumLinks() != 2*29*30 {
		t.Errorf("expected %d links, got %d", 2*29*30, c.Store().NumLinks())
	}
	if len(grid.Points) != 900 {
		t.Errorf("grid recorded %d points", len(grid.Points))
	}
	if c.wind != nil {
		t.Error("wind must be off by default")
	}
}

func TestBuildWithWind(t *testing.T) {
	cfg := config.GetPreset("breeze")
	c, _, err := Build(cfg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.wind == nil || !c.wind.Enabled() {
		t.Error("expected wind wired for breeze preset")
	}
}

func TestSimulatePhysics(t *testing.T) {
	c, _, err := Build(config.GetPreset("empty"))
	if err != nil {
		t.Fatal(err)
	}
	id := c.Editor().AddFreePoint(r2.Vec{X: 100, Y: 100})
	c.SetMode(ModeSimulate)
	for i := 0; i < 10; i++ {
		c.Tick(Input{Elapsed: 16})
	}
	p, _ := c.Store().Point(id)
	if p.Position.Y <= 100 {
		t.Errorf("expected point to fall, y = %v", p.Position.Y)
	}
	if p.Position.X != 100 {
		t.Errorf("expected no horizontal drift, x = %v", p.Position.X)
	}
}

func TestValidate(t *testing.T) {
	c := newBare()
	id := c.Editor().AddFreePoint(r2.Vec{})
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Store().PointRef(id).Position.X = math.NaN()
	if err := c.Validate(); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("Validate() = %v, want ErrInvalidState", err)
	}
}

func TestClear(t *testing.T) {
	c := newBare()
	c.Editor().AddFreePoint(r2.Vec{})
	press(c, r2.Vec{})
	c.Clear()
	if c.Store().NumPoints() != 0 || c.Drag().Active || c.Mode() != ModeEdit {
		t.Error("Clear did not reset the controller")
	}
}

func TestObserverEvents(t *testing.T) {
	c := newBare()
	var kinds []EventKind
	c.AddObserver(ObserverFunc(func(e Event) { kinds = append(kinds, e.Kind) }))

	press(c, r2.Vec{})
	release(c, r2.Vec{})
	press(c, r2.Vec{})
	release(c, r2.Vec{X: 100})
	c.Tick(Input{Toggle: true})

	want := []EventKind{EventPointAdded, EventDragStarted, EventDragCancelled, EventModeChanged}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}
