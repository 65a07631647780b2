package bsphere

import (
	"math"

	"github.com/chazu/meshfit/pkg/geom"
)

// solve returns an approximate minimum enclosing ball of points.
//
// The ball is seeded from a cheap diameter estimate (the point farthest from
// points[0], then the point farthest from that one) and refined by full
// passes that grow the ball just enough to reach each outlier, moving the
// center half the overshoot towards it. Once a point is within tolerance it
// stays within tolerance, so a pass without violations ends the loop early.
func solve(points []geom.Vec3, eps float64, maxPasses int) Ball {
	if len(points) == 0 {
		return NullBall()
	}

	far1 := farthestFrom(points, points[0])
	far2 := farthestFrom(points, far1)

	center := far1.Midpoint(far2)
	radius := far1.Dist(far2) / 2

	for pass := 0; pass < maxPasses; pass++ {
		grown := false
		for _, p := range points {
			limit := radius * (1 + eps)
			d2 := center.DistSq(p)
			if d2 <= limit*limit {
				continue
			}

			d := math.Sqrt(d2)
			excess := d - radius
			if excess <= 0 || d == 0 {
				continue
			}

			half := excess / 2
			center = center.Add(p.Sub(center).Scale(half / d))
			radius += half
			grown = true
		}
		if !grown {
			break
		}
	}

	return Ball{Center: center, Radius: radius}
}

// farthestFrom returns the point of points at the greatest distance from q.
// Ties keep the earliest point.
func farthestFrom(points []geom.Vec3, q geom.Vec3) geom.Vec3 {
	best := points[0]
	bestD2 := q.DistSq(best)
	for _, p := range points[1:] {
		if d2 := q.DistSq(p); d2 > bestD2 {
			best, bestD2 = p, d2
		}
	}
	return best
}
