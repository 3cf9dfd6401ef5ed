package kernel

import "github.com/go-gl/mathgl/mgl64"

// RotationMatrix returns Rz * Ry * Rx for Euler angles in degrees, the
// convention every kernel uses for Rotate.
func RotationMatrix(x, y, z float64) mgl64.Mat3 {
	rx := mgl64.Rotate3DX(mgl64.DegToRad(x))
	ry := mgl64.Rotate3DY(mgl64.DegToRad(y))
	rz := mgl64.Rotate3DZ(mgl64.DegToRad(z))
	return rz.Mul3(ry).Mul3(rx)
}

// RotatePositions rotates every vertex of a flat buffer in place.
func RotatePositions(pos []float64, x, y, z float64) {
	m := RotationMatrix(x, y, z)
	for i := 0; i+2 < len(pos); i += 3 {
		v := m.Mul3x1(mgl64.Vec3{pos[i], pos[i+1], pos[i+2]})
		pos[i], pos[i+1], pos[i+2] = v[0], v[1], v[2]
	}
}

// TranslatePositions offsets every vertex of a flat buffer in place.
func TranslatePositions(pos []float64, x, y, z float64) {
	for i := 0; i+2 < len(pos); i += 3 {
		pos[i] += x
		pos[i+1] += y
		pos[i+2] += z
	}
}

// Widen converts a float32 position buffer to float64.
func Widen(pos []float32) []float64 {
	out := make([]float64, len(pos))
	for i, v := range pos {
		out[i] = float64(v)
	}
	return out
}

// Narrow converts a float64 position buffer to float32.
func Narrow(pos []float64) []float32 {
	out := make([]float32, len(pos))
	for i, v := range pos {
		out[i] = float32(v)
	}
	return out
}
