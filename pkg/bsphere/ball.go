package bsphere

import (
	"fmt"

	"github.com/chazu/meshfit/pkg/geom"
)

// nullRadius marks a ball that bounds nothing.
const nullRadius = -1

// Ball is a solid sphere given by its center and radius.
type Ball struct {
	Center geom.Vec3 `json:"center"`
	Radius float64   `json:"radius"`
}

// NullBall returns the ball of an empty point set. Its radius is negative so
// it cannot be confused with the zero-radius ball around a single point.
func NullBall() Ball {
	return Ball{Radius: nullRadius}
}

// IsNull reports whether b is the empty-set sentinel.
func (b Ball) IsNull() bool {
	return b.Radius < 0
}

// Diameter returns twice the radius. It is negative for the null ball.
func (b Ball) Diameter() float64 {
	return 2 * b.Radius
}

// Contains reports whether p lies within Radius*(1+eps) of the center.
// The null ball contains nothing.
func (b Ball) Contains(p geom.Vec3, eps float64) bool {
	if b.IsNull() {
		return false
	}
	limit := b.Radius * (1 + eps)
	return b.Center.DistSq(p) <= limit*limit
}

func (b Ball) String() string {
	if b.IsNull() {
		return "Ball(null)"
	}
	return fmt.Sprintf("Ball(center=%s, radius=%g)", b.Center, b.Radius)
}
