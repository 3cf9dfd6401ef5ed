package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var rankSamples = []float32{
	float32(math.Inf(-1)), -1e9, -1e3, -1, -1e-3, -1e-9,
	float32(math.Copysign(0, -1)), 0,
	1e-9, 1e-3, 1, 1e3, 1e9, float32(math.Inf(1)),
}

func TestAngleRankQuadrants(t *testing.T) {
	const tol = 1e-5
	assert.InDelta(t, math.Pi/4, AngleRank(1, 1), tol)
	assert.InDelta(t, 3*math.Pi/4, AngleRank(1, -1), tol)
	assert.InDelta(t, -math.Pi/4, AngleRank(-1, 1), tol)
	assert.InDelta(t, -3*math.Pi/4, AngleRank(-1, -1), tol)
}

func TestAngleRankUndefinedIsZero(t *testing.T) {
	inf := float32(math.Inf(1))
	assert.Equal(t, float32(0), AngleRank(0, 0))
	assert.Equal(t, float32(0), AngleRank(inf, inf))
	assert.Equal(t, float32(0), AngleRank(-inf, inf))
}

func TestAngleRankSignedZero(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	assert.True(t, math.Signbit(float64(AngleRank(negZero, 1))))
	assert.False(t, math.Signbit(float64(AngleRank(0, 1))))
	assert.Equal(t, pi, AngleRank(0, -1))
	assert.Equal(t, -pi, AngleRank(negZero, -1))
}

func TestAngleRankRange(t *testing.T) {
	for _, y := range rankSamples {
		for _, x := range rankSamples {
			r := AngleRank(y, x)
			assert.False(t, r != r, "NaN for (%v, %v)", y, x)
			assert.GreaterOrEqual(t, r, -pi, "(%v, %v)", y, x)
			assert.LessOrEqual(t, r, pi, "(%v, %v)", y, x)
		}
	}
}

func isZero(v float32) bool { return v == 0 }

func isInf(v float32) bool { return math.IsInf(float64(v), 0) }

// skipPoint excludes inputs whose ratio is undefined.
func skipPoint(y, x float32) bool {
	return (isZero(y) && isZero(x)) || (isInf(y) && isInf(x))
}

func TestAngleRankPreservesAtan2Order(t *testing.T) {
	type point struct{ y, x float32 }
	var pts []point
	for _, y := range rankSamples {
		for _, x := range rankSamples {
			if !skipPoint(y, x) {
				pts = append(pts, point{y, x})
			}
		}
	}

	for _, a := range pts {
		for _, b := range pts {
			ta := math.Atan2(float64(a.y), float64(a.x))
			tb := math.Atan2(float64(b.y), float64(b.x))
			ra, rb := AngleRank(a.y, a.x), AngleRank(b.y, b.x)
			switch {
			case math.Abs(ta-tb) < 1e-5:
				// indistinguishable at float32 precision
			case ta < tb:
				assert.Less(t, ra, rb, "%v vs %v", a, b)
			default:
				assert.Greater(t, ra, rb, "%v vs %v", a, b)
			}
		}
	}
}

func BenchmarkAngleRank(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += AngleRank(float32(i%7)-3, float32(i%5)-2)
	}
	_ = sink
}

func BenchmarkAtan2(b *testing.B) {
	var sink float64
	for i := 0; i < b.N; i++ {
		sink += math.Atan2(float64(i%7)-3, float64(i%5)-2)
	}
	_ = sink
}
