package sim

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

type Mode int

const (
	ModeEdit Mode = iota
	ModeSimulate
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeSimulate:
		return "simulate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Input is the level state the host samples once per frame. Elapsed is the
// time since the previous frame in milliseconds.
type Input struct {
	Pointer   r2.Vec
	Primary   bool
	Secondary bool
	Toggle    bool
	Modifier  bool
	Elapsed   float64
}

type Integrator interface {
	Step(g *graph.Store, dt float64)
}

type Relaxer interface {
	Relax(g *graph.Store)
}

// InputSource feeds a Runner. ok is false once the source is exhausted.
type InputSource interface {
	Next() (in Input, ok bool)
}

type EventKind int

const (
	EventPointAdded EventKind = iota
	EventPointDeleted
	EventLinkAdded
	EventLinkErased
	EventPinToggled
	EventDragStarted
	EventDragCancelled
	EventModeChanged
)

var eventNames = map[EventKind]string{
	EventPointAdded:    "point-added",
	EventPointDeleted:  "point-deleted",
	EventLinkAdded:     "link-added",
	EventLinkErased:    "link-erased",
	EventPinToggled:    "pin-toggled",
	EventDragStarted:   "drag-started",
	EventDragCancelled: "drag-cancelled",
	EventModeChanged:   "mode-changed",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event describes one structural change made during a tick. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Frame    int
	Point    graph.PointID
	Link     graph.LinkID
	Removed  []graph.LinkID
	Pruned   []graph.PointID
	Position r2.Vec
	Pinned   bool
	Mode     Mode
}

func (e Event) String() string {
	switch e.Kind {
	case EventPointAdded:
		return fmt.Sprintf("#%d %s %s at (%.1f, %.1f)", e.Frame, e.Kind, e.Point, e.Position.X, e.Position.Y)
	case EventPointDeleted:
		return fmt.Sprintf("#%d %s %s (%d links)", e.Frame, e.Kind, e.Point, len(e.Removed))
	case EventLinkErased:
		return fmt.Sprintf("#%d %s %s (%d pruned)", e.Frame, e.Kind, e.Link, len(e.Pruned))
	case EventPinToggled:
		return fmt.Sprintf("#%d %s %s pinned=%t", e.Frame, e.Kind, e.Point, e.Pinned)
	case EventModeChanged:
		return fmt.Sprintf("#%d %s %s", e.Frame, e.Kind, e.Mode)
	case EventLinkAdded:
		return fmt.Sprintf("#%d %s %s", e.Frame, e.Kind, e.Link)
	default:
		return fmt.Sprintf("#%d %s %s", e.Frame, e.Kind, e.Point)
	}
}

type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Preview is the transient segment drawn while a drag is pending.
type Preview struct {
	From, To r2.Vec
}

// Frame is what the renderer sees after a tick.
type Frame struct {
	Mode    Mode
	Points  []graph.PointView
	Links   []graph.LinkView
	Preview *Preview
}

type Result struct {
	Frames  int
	Time    float64
	Series  map[string][]float64
	Metrics map[string]float64
	Events  int
}
