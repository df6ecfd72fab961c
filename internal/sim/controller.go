package sim

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/editor"
	"github.com/san-kum/clothsim/internal/graph"
	"github.com/san-kum/clothsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultPickRadius    = 4.0
	DefaultLinkTolerance = 2.0
)

type Options struct {
	PickRadius    float64
	LinkTolerance float64
}

func DefaultOptions() Options {
	return Options{PickRadius: DefaultPickRadius, LinkTolerance: DefaultLinkTolerance}
}

// Controller owns one cloth and advances it one input snapshot at a time.
// It starts in ModeEdit.
type Controller struct {
	store      *graph.Store
	editor     *editor.Editor
	integrator Integrator
	solver     Relaxer
	wind       *physics.Wind
	opts       Options

	mode      Mode
	drag      Drag
	latches   latches
	frame     int
	observers []Observer
}

func New(store *graph.Store, integrator Integrator, solver Relaxer, opts Options) *Controller {
	return &Controller{
		store:      store,
		editor:     editor.New(store),
		integrator: integrator,
		solver:     solver,
		opts:       opts,
		observers:  make([]Observer, 0),
	}
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// SetWind makes the controller advance w's gust schedule on simulated frames.
// The wind must also be registered as a field on the integrator.
func (c *Controller) SetWind(w *physics.Wind) { c.wind = w }

func (c *Controller) SetOptions(opts Options) { c.opts = opts }
func (c *Controller) Options() Options        { return c.opts }

func (c *Controller) Mode() Mode             { return c.mode }
func (c *Controller) Drag() Drag             { return c.drag }
func (c *Controller) Store() *graph.Store    { return c.store }
func (c *Controller) Editor() *editor.Editor { return c.editor }
func (c *Controller) FrameCount() int        { return c.frame }

// Tick processes one frame: edits (in ModeEdit), then the mode toggle, then
// physics and erase-while-held (in ModeSimulate).
func (c *Controller) Tick(in Input) {
	c.frame++
	edges := c.latches.update(in)

	if c.mode == ModeEdit {
		c.edit(in, edges)
	}

	if edges.TogglePressed {
		c.toggleMode()
	}

	if c.mode == ModeSimulate {
		c.simulate(in.Elapsed)
		if edges.PrimaryHeld {
			c.erase(in.Pointer)
		}
	}
}

func (c *Controller) edit(in Input, e Edges) {
	if e.PrimaryPressed {
		if in.Modifier {
			c.deleteAt(in.Pointer)
		} else if id, ok := c.editor.FindNearestPoint(in.Pointer, c.opts.PickRadius); ok {
			c.startDrag(id, in.Pointer)
		} else {
			id := c.editor.AddFreePoint(in.Pointer)
			c.emit(Event{Kind: EventPointAdded, Point: id, Position: in.Pointer})
		}
	}

	if c.drag.Active {
		c.drag.Cursor = in.Pointer
		if e.PrimaryReleased {
			c.releaseDrag(in.Pointer)
		}
	}

	if e.SecondaryPressed {
		if id, ok := c.editor.FindNearestPoint(in.Pointer, c.opts.PickRadius); ok {
			pinned, err := c.editor.TogglePin(id)
			if err == nil {
				c.emit(Event{Kind: EventPinToggled, Point: id, Pinned: pinned, Position: in.Pointer})
			}
		}
	}
}

func (c *Controller) deleteAt(pos r2.Vec) {
	id, ok := c.editor.FindNearestPoint(pos, c.opts.PickRadius)
	if !ok {
		return
	}
	removed, err := c.editor.DeletePoint(id)
	if err != nil {
		return
	}
	c.emit(Event{Kind: EventPointDeleted, Point: id, Removed: removed, Position: pos})
}

func (c *Controller) toggleMode() {
	if c.mode == ModeEdit {
		c.SetMode(ModeSimulate)
	} else {
		c.SetMode(ModeEdit)
	}
}

// SetMode switches mode directly, cancelling any pending drag.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	c.cancelDrag()
	c.mode = m
	c.emit(Event{Kind: EventModeChanged, Mode: c.mode})
}

func (c *Controller) simulate(dt float64) {
	if c.wind != nil {
		c.wind.Advance(dt)
	}
	if c.integrator != nil {
		c.integrator.Step(c.store, dt)
	}
	if c.solver != nil {
		c.solver.Relax(c.store)
	}
}

// erase deletes at most one link per frame: the first one under pos.
func (c *Controller) erase(pos r2.Vec) {
	id, ok := c.editor.FindNearestLink(pos, c.opts.LinkTolerance)
	if !ok {
		return
	}
	pruned, err := c.editor.DeleteLink(id)
	if err != nil {
		return
	}
	c.emit(Event{Kind: EventLinkErased, Link: id, Pruned: pruned, Position: pos})
}

// Clear empties the graph and returns to ModeEdit. Latches keep their state
// so a button held across the clear does not produce a fresh press.
func (c *Controller) Clear() {
	c.drag = Drag{}
	c.store.Clear()
	if c.mode != ModeEdit {
		c.mode = ModeEdit
		c.emit(Event{Kind: EventModeChanged, Mode: c.mode})
	}
}

// Validate reports the first point whose position is no longer finite.
func (c *Controller) Validate() error {
	var bad graph.PointID
	c.store.EachPoint(func(id graph.PointID, p *graph.Point) {
		if bad.IsZero() && !(dynamo.IsValid(p.Position) && dynamo.IsValid(p.Previous)) {
			bad = id
		}
	})
	if !bad.IsZero() {
		return fmt.Errorf("%w: point %s", dynamo.ErrInvalidState, bad)
	}
	return nil
}

func (c *Controller) Frame() Frame {
	snap := c.store.Snapshot()
	return Frame{
		Mode:    c.mode,
		Points:  snap.Points,
		Links:   snap.Links,
		Preview: c.preview(),
	}
}

func (c *Controller) emit(e Event) {
	e.Frame = c.frame
	for _, o := range c.observers {
		o.OnEvent(e)
	}
}
