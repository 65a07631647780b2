// Package bsphere computes approximate best-fit (minimum enclosing) spheres of
// 3D point sets.
//
// A BestFit accumulates points, either one at a time or harvested from
// meshes and mesh-group hierarchies, and lazily recomputes its bounding ball
// the first time it is queried after a mutation. The ball is approximate: every
// accumulated point lies within Radius*(1+Tolerance) of the center, but the
// radius is not guaranteed to be the smallest possible.
//
// A BestFit is not safe for concurrent use. Queries mutate the internal cache,
// so even concurrent readers need external locking.
package bsphere
