// Package geom holds the small vector type shared by the meshfit packages and
// the capability interfaces through which point, mesh and mesh-group suppliers
// hand positions to the bounding sphere engine.
package geom
