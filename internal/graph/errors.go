package graph

import "errors"

var (
	ErrPointNotFound = errors.New("graph: point not found")
	ErrLinkNotFound  = errors.New("graph: link not found")

	// ErrPointInUse is returned by RemovePoint while links still reference the point.
	ErrPointInUse = errors.New("graph: point still has incident links")

	ErrSelfLink   = errors.New("graph: link endpoints must differ")
	ErrRestLength = errors.New("graph: rest length must be finite and non-negative")
)
