package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/graph"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/physics"
	"github.com/san-kum/clothsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("Controller", func() {
	var (
		ctrl   *sim.Controller
		events []sim.Event
	)

	tick := func(in sim.Input) { ctrl.Tick(in) }
	at := func(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

	BeforeEach(func() {
		cfg := dynamo.DefaultConfig()
		ctrl = sim.New(graph.New(), integrators.NewVerlet(cfg), physics.NewSolver(cfg), sim.DefaultOptions())
		events = nil
		ctrl.AddObserver(sim.ObserverFunc(func(e sim.Event) { events = append(events, e) }))
	})

	Describe("drag-connect", func() {
		var a, b graph.PointID

		BeforeEach(func() {
			a = ctrl.Editor().AddFreePoint(at(100, 100))
			b = ctrl.Editor().AddFreePoint(at(160, 180))
			tick(sim.Input{Pointer: at(101, 100), Primary: true})
		})

		It("enters Dragging on press over a point", func() {
			Expect(ctrl.Drag().Active).To(BeTrue())
			Expect(ctrl.Drag().Source).To(Equal(a))
			Expect(ctrl.Store().NumPoints()).To(Equal(2))
		})

		It("tracks the cursor while the button is held", func() {
			tick(sim.Input{Pointer: at(130, 140), Primary: true})
			preview := ctrl.Frame().Preview
			Expect(preview).NotTo(BeNil())
			Expect(preview.From).To(Equal(at(100, 100)))
			Expect(preview.To).To(Equal(at(130, 140)))
		})

		It("commits a link when released over another point", func() {
			tick(sim.Input{Pointer: at(160, 182)})
			Expect(ctrl.Drag().Active).To(BeFalse())
			Expect(ctrl.Store().NumLinks()).To(Equal(1))

			l, ok := ctrl.Store().Link(ctrl.Store().Links()[0])
			Expect(ok).To(BeTrue())
			Expect(l.A).To(Equal(a))
			Expect(l.B).To(Equal(b))
			Expect(l.Rest).To(BeNumerically("~", 100, 1e-9))
		})

		It("returns to Idle without a link when released over empty space", func() {
			tick(sim.Input{Pointer: at(500, 500)})
			Expect(ctrl.Drag().Active).To(BeFalse())
			Expect(ctrl.Store().NumLinks()).To(BeZero())
			Expect(ctrl.Frame().Preview).To(BeNil())
			Expect(events[len(events)-1].Kind).To(Equal(sim.EventDragCancelled))
		})

		It("is cancelled by switching to simulate", func() {
			tick(sim.Input{Pointer: at(101, 100), Primary: true, Toggle: true})
			Expect(ctrl.Mode()).To(Equal(sim.ModeSimulate))
			Expect(ctrl.Drag().Active).To(BeFalse())
		})
	})

	Describe("simulate mode", func() {
		var top, bottom graph.PointID

		BeforeEach(func() {
			top = ctrl.Editor().AddFreePoint(at(200, 50))
			bottom = ctrl.Editor().AddFreePoint(at(200, 100))
			_, err := ctrl.Editor().Connect(top, bottom)
			Expect(err).NotTo(HaveOccurred())
			_, err = ctrl.Editor().TogglePin(top)
			Expect(err).NotTo(HaveOccurred())
			tick(sim.Input{Toggle: true, Elapsed: 16})
		})

		It("keeps pinned points fixed and the link near rest length", func() {
			for i := 0; i < 60; i++ {
				tick(sim.Input{Elapsed: 16})
			}
			p, _ := ctrl.Store().Point(top)
			Expect(p.Position).To(Equal(at(200, 50)))
			Expect(p.Previous).To(Equal(at(200, 50)))

			q, _ := ctrl.Store().Point(bottom)
			Expect(dynamo.Distance(p.Position, q.Position)).To(BeNumerically("~", 50, 0.5))
		})

		It("erases the link under a held cursor and prunes orphans", func() {
			tick(sim.Input{Pointer: at(200, 75), Primary: true, Elapsed: 16})
			Expect(ctrl.Store().NumLinks()).To(BeZero())
			Expect(ctrl.Store().NumPoints()).To(BeZero())
		})

		It("ignores clicks in empty space", func() {
			tick(sim.Input{Pointer: at(900, 600), Primary: true, Elapsed: 16})
			tick(sim.Input{Pointer: at(900, 600), Elapsed: 16})
			Expect(ctrl.Store().NumPoints()).To(Equal(2))
		})

		It("returns to edit on the next toggle press", func() {
			tick(sim.Input{Elapsed: 16})
			tick(sim.Input{Toggle: true, Elapsed: 16})
			Expect(ctrl.Mode()).To(Equal(sim.ModeEdit))
		})
	})
})
