package sim

// Latch turns a level signal into edges by remembering the previous level.
type Latch struct {
	down bool
}

func (l *Latch) Update(level bool) (pressed, released bool) {
	pressed = level && !l.down
	released = !level && l.down
	l.down = level
	return pressed, released
}

// Edges is one frame's worth of derived input events.
type Edges struct {
	PrimaryPressed   bool
	PrimaryReleased  bool
	PrimaryHeld      bool
	SecondaryPressed bool
	TogglePressed    bool
}

type latches struct {
	primary   Latch
	secondary Latch
	toggle    Latch
}

func (l *latches) update(in Input) Edges {
	var e Edges
	e.PrimaryPressed, e.PrimaryReleased = l.primary.Update(in.Primary)
	e.PrimaryHeld = in.Primary
	e.SecondaryPressed, _ = l.secondary.Update(in.Secondary)
	e.TogglePressed, _ = l.toggle.Update(in.Toggle)
	return e
}
