package bsphere

import (
	"errors"

	"github.com/chazu/meshfit/pkg/geom"
)

const (
	// DefaultTolerance is the relative slack allowed between a point and the
	// surface of the computed ball.
	DefaultTolerance = 1e-6

	// DefaultMaxPasses caps the number of refinement passes of the solver.
	DefaultMaxPasses = 16
)

// ErrReleaseWhileDirty is the panic value raised by ReleaseMemoryWithoutUpdate
// in bspheredebug builds when the cached ball is stale.
var ErrReleaseWhileDirty = errors.New("bsphere: ReleaseMemoryWithoutUpdate called before the ball was computed")

// Option configures a BestFit.
type Option func(*BestFit)

// WithTolerance sets the relative tolerance. Non-positive values are ignored.
func WithTolerance(eps float64) Option {
	return func(b *BestFit) {
		if eps > 0 {
			b.eps = eps
		}
	}
}

// WithMaxPasses sets the refinement pass cap. Values below 1 are ignored.
func WithMaxPasses(n int) Option {
	return func(b *BestFit) {
		if n >= 1 {
			b.maxPasses = n
		}
	}
}

// BestFit accumulates 3D points and reports an approximate minimum
// enclosing ball for them.
//
// Every mutation marks the cached ball stale; the next query recomputes it
// over the current point set. Queries made without an intervening mutation
// return the cached ball unchanged.
type BestFit struct {
	points    []geom.Vec3
	eps       float64
	maxPasses int
	ball      Ball
	updated   bool
}

// New returns an empty BestFit.
func New(opts ...Option) *BestFit {
	b := &BestFit{
		eps:       DefaultTolerance,
		maxPasses: DefaultMaxPasses,
		ball:      NullBall(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Tolerance returns the relative tolerance fixed at construction.
func (b *BestFit) Tolerance() float64 {
	return b.eps
}

// MaxPasses returns the refinement pass cap fixed at construction.
func (b *BestFit) MaxPasses() int {
	return b.maxPasses
}

// NumPoints returns the number of points currently held.
func (b *BestFit) NumPoints() int {
	return len(b.points)
}

// Valid reports whether the cached ball matches the current points. It never
// triggers a recomputation.
func (b *BestFit) Valid() bool {
	return b.updated
}

// Clear removes all points. The next query yields the null ball.
func (b *BestFit) Clear() {
	b.points = b.points[:0]
	b.updated = false
}

// ReleaseMemoryWithoutUpdate frees the point storage but keeps the cached
// ball and does not mark it stale.
//
// The caller must make sure the ball is current (query it, or call Update)
// before releasing. Releasing a stale ball leaves nothing to recompute from:
// later queries report the null ball instead of bounding the points that
// were added. Builds with the bspheredebug tag panic with
// ErrReleaseWhileDirty in that case.
func (b *BestFit) ReleaseMemoryWithoutUpdate() {
	if debugChecks && !b.updated {
		panic(ErrReleaseWhileDirty)
	}
	b.points = nil
}

// Update recomputes the ball if any point was added or removed since the
// last computation.
func (b *BestFit) Update() {
	if b.updated {
		return
	}
	b.ball = solve(b.points, b.eps, b.maxPasses)
	b.updated = true
}

// Radius returns the radius of the ball, or a negative value if no points
// have been added.
func (b *BestFit) Radius() float64 {
	b.Update()
	return b.ball.Radius
}

// Diameter returns twice the radius.
func (b *BestFit) Diameter() float64 {
	b.Update()
	return b.ball.Diameter()
}

// Center returns the center of the ball.
func (b *BestFit) Center() geom.Vec3 {
	b.Update()
	return b.ball.Center
}

// Ball returns the ball bounding all added points.
func (b *BestFit) Ball() Ball {
	b.Update()
	return b.ball
}
