package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	assert.Equal(t, V(4, -2), a.Add(b))
	assert.Equal(t, V(-2, 6), a.Sub(b))
	assert.Equal(t, V(2, 4), a.Scale(2))
	assert.Equal(t, float64(5), b.Len())
	assert.Equal(t, float64(25), b.Len2())
}

func TestVec2Normalize(t *testing.T) {
	v := V(3, 4).Normalize()
	assert.InDelta(t, 1.0, v.Len(), 1e-12)
	assert.InDelta(t, 0.6, v.X, 1e-12)
	assert.InDelta(t, 0.8, v.Y, 1e-12)

	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestAngleRoundTrip(t *testing.T) {
	for _, angle := range []float64{0, 0.5, 1.0, -0.75, math.Pi / 2} {
		v := FromAngle(angle)
		assert.InDelta(t, angle, v.Angle(), 1e-12, "angle %f", angle)
		assert.InDelta(t, 1.0, v.Len(), 1e-12)
	}

	// Angle zero points up-screen.
	up := FromAngle(0)
	assert.InDelta(t, 0, up.X, 1e-12)
	assert.InDelta(t, 1, up.Y, 1e-12)
}

func TestRotate(t *testing.T) {
	v := V(0, 1).Rotate(math.Pi / 2)
	assert.InDelta(t, -1, v.X, 1e-12)
	assert.InDelta(t, 0, v.Y, 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1, 2))
	assert.Equal(t, 2.0, Clamp(3, 1, 2))
	assert.Equal(t, 1.5, Clamp(1.5, 1, 2))
}

func TestHueRGB(t *testing.T) {
	red := HueRGB(0)
	assert.Equal(t, uint8(255), red.R)
	assert.Equal(t, uint8(0), red.G)

	green := HueRGB(120)
	assert.Equal(t, uint8(255), green.G)

	blue := HueRGB(240)
	assert.Equal(t, uint8(255), blue.B)

	// Wraps outside [0, 360).
	assert.Equal(t, HueRGB(0), HueRGB(360))
	assert.Equal(t, HueRGB(300), HueRGB(-60))
}
