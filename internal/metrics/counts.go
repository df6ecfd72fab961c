package metrics

import "github.com/san-kum/clothsim/internal/graph"

type PointCount struct{ value float64 }

func NewPointCount() *PointCount { return &PointCount{} }

func (c *PointCount) Name() string           { return "points" }
func (c *PointCount) Observe(g *graph.Store) { c.value = float64(g.NumPoints()) }
func (c *PointCount) Value() float64         { return c.value }
func (c *PointCount) Reset()                 { c.value = 0 }

type LinkCount struct{ value float64 }

func NewLinkCount() *LinkCount { return &LinkCount{} }

func (c *LinkCount) Name() string           { return "links" }
func (c *LinkCount) Observe(g *graph.Store) { c.value = float64(g.NumLinks()) }
func (c *LinkCount) Value() float64         { return c.value }
func (c *LinkCount) Reset()                 { c.value = 0 }
