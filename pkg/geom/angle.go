package geom

import "math"

const (
	pi     = float32(math.Pi)
	halfPi = float32(math.Pi / 2)
)

// AngleRank maps (y, x) to a value in [-pi, pi] that orders directions the
// same way math.Atan2 does, without evaluating any trigonometric function.
// The value is not an angle; only comparisons between results are
// meaningful.
//
// An undefined ratio (0/0 or Inf/Inf) ranks as 0.
func AngleRank(y, x float32) float32 {
	alpha := y / x
	if alpha != alpha {
		return 0
	}
	normalized := halfPi * sign(alpha) * (1 - 1/(1+abs(alpha)))
	if !math.Signbit(float64(x)) {
		return normalized
	}
	return normalized + float32(math.Copysign(math.Pi, float64(y)))
}

// sign keeps the signed zero for a zero argument.
func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v
}

func abs(v float32) float32 {
	return math.Float32frombits(math.Float32bits(v) &^ (1 << 31))
}
