// Package geom holds the small 2D math toolkit shared by the games.
package geom

import "math"

// Vec2 is a 2D vector. Methods return new values; vectors are plain data.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64  { return math.Hypot(v.X, v.Y) }
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector, or the zero vector unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Angle returns the angle of v measured counterclockwise from +Y. This is
// the heading convention used by the games: angle 0 points up-screen.
func (v Vec2) Angle() float64 {
	return math.Atan2(-v.X, v.Y)
}

// FromAngle returns the unit heading for an angle measured counterclockwise
// from +Y.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: -math.Sin(angle), Y: math.Cos(angle)}
}

// Rotate rotates v counterclockwise by the given angle.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
