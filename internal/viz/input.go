package viz

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/clothsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// hostInput folds terminal events into the level state sampled each tick.
// A press and release that both land between two ticks still reads as down
// for one tick.
type hostInput struct {
	pointer          r2.Vec
	primaryDown      bool
	primaryClicked   bool
	secondaryDown    bool
	secondaryClicked bool
	modifier         bool
	stickyModifier   bool
	toggle           bool
}

func (h *hostInput) mouse(msg tea.MouseMsg, pos r2.Vec) {
	h.pointer = pos
	switch msg.Action {
	case tea.MouseActionPress:
		h.modifier = msg.Ctrl
		switch msg.Button {
		case tea.MouseButtonLeft:
			h.primaryDown, h.primaryClicked = true, true
		case tea.MouseButtonRight:
			h.secondaryDown, h.secondaryClicked = true, true
		}
	case tea.MouseActionRelease:
		h.primaryDown = false
		h.secondaryDown = false
	}
}

func (h *hostInput) snapshot(elapsed float64) sim.Input {
	in := sim.Input{
		Pointer:   h.pointer,
		Primary:   h.primaryDown || h.primaryClicked,
		Secondary: h.secondaryDown || h.secondaryClicked,
		Toggle:    h.toggle,
		Modifier:  h.modifier || h.stickyModifier,
		Elapsed:   elapsed,
	}
	h.primaryClicked = false
	h.secondaryClicked = false
	h.toggle = false
	return in
}
