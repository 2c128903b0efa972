package vmath

import "math"

// Vec2 is a float64 2D vector for world-space motion
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2IsZero reports whether both components are exactly zero
func V2IsZero(v Vec2) bool {
	return v.X == 0 && v.Y == 0
}

// V2Normalize returns the unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2Lerp interpolates from a to b, t=0 yields exactly a
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// SmoothNudge moves v toward target with frame-rate independent exponential decay
// decayRate is in 1/s, dt in seconds
func SmoothNudge(v, target Vec2, decayRate, dt float64) Vec2 {
	return V2Lerp(v, target, 1-math.Exp(-decayRate*dt))
}
