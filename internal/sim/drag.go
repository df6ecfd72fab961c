package sim

import (
	"github.com/san-kum/clothsim/internal/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Drag is the pending drag-connect gesture. The zero value is Idle.
type Drag struct {
	Active bool
	Source graph.PointID
	Cursor r2.Vec
}

func (c *Controller) startDrag(source graph.PointID, cursor r2.Vec) {
	c.drag = Drag{Active: true, Source: source, Cursor: cursor}
	c.emit(Event{Kind: EventDragStarted, Point: source, Position: cursor})
}

// releaseDrag connects the source to the first point under the cursor.
// Releasing over empty space, over the source itself, or after the source
// was removed cancels the gesture.
func (c *Controller) releaseDrag(pos r2.Vec) {
	source := c.drag.Source
	c.drag = Drag{}

	target, ok := c.editor.FindNearestPoint(pos, c.opts.PickRadius)
	if !ok || target == source || !c.store.HasPoint(source) {
		c.emit(Event{Kind: EventDragCancelled, Point: source, Position: pos})
		return
	}
	id, err := c.editor.Connect(source, target)
	if err != nil {
		c.emit(Event{Kind: EventDragCancelled, Point: source, Position: pos})
		return
	}
	c.emit(Event{Kind: EventLinkAdded, Link: id, Point: target, Position: pos})
}

func (c *Controller) cancelDrag() {
	if !c.drag.Active {
		return
	}
	source := c.drag.Source
	c.drag = Drag{}
	c.emit(Event{Kind: EventDragCancelled, Point: source})
}

func (c *Controller) preview() *Preview {
	if !c.drag.Active {
		return nil
	}
	p, ok := c.store.Point(c.drag.Source)
	if !ok {
		return nil
	}
	return &Preview{From: p.Position, To: c.drag.Cursor}
}
