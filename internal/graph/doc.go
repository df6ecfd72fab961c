// Package graph stores the points and links of a cloth.
//
// Entities live in slot arenas addressed by generation-tagged handles
// ([PointID], [LinkID]). A handle stays valid until its entity is removed;
// afterwards the slot may be recycled under a new generation, so a stale
// handle resolves to "not found" instead of aliasing the new entity.
//
// Iteration (Points, Links, EachPoint, EachLink) follows insertion order,
// which the constraint solver and the pickers depend on for determinism.
// Each point keeps the handles of its incident links so cascading deletes
// never scan the whole link set.
package graph
