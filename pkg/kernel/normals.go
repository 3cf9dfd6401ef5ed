package kernel

import "github.com/go-gl/mathgl/mgl32"

// normalLengthDivisor scales debug normals relative to the bounding sphere.
const normalLengthDivisor = 25

// TriangleNormals builds two line-segment buffers for visualising face
// orientation. For every triangle, outward holds a segment from the centroid
// along the unit normal and inward one along its opposite; each segment is
// two points (six floats). Segment length is the bounding-sphere radius of
// the whole soup divided by 25, the sphere being centred on the bounding box
// centre. Degenerate triangles yield zero-length segments.
func TriangleNormals(pos []float32) (outward, inward []float32) {
	n := len(pos) / 9
	outward = make([]float32, 0, n*6)
	inward = make([]float32, 0, n*6)
	if n == 0 {
		return outward, inward
	}

	min, max, _ := Bounds(pos[:n*9])
	center := mgl32.Vec3{min[0], min[1], min[2]}.Add(mgl32.Vec3{max[0], max[1], max[2]}).Mul(0.5)
	var radius float32
	for i := 0; i < n*3; i++ {
		d := mgl32.Vec3{pos[3*i], pos[3*i+1], pos[3*i+2]}.Sub(center).Len()
		if d > radius {
			radius = d
		}
	}
	length := radius / normalLengthDivisor

	for t := 0; t < n; t++ {
		o := t * 9
		a := mgl32.Vec3{pos[o], pos[o+1], pos[o+2]}
		b := mgl32.Vec3{pos[o+3], pos[o+4], pos[o+5]}
		c := mgl32.Vec3{pos[o+6], pos[o+7], pos[o+8]}
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)

		var dir mgl32.Vec3
		if cr := b.Sub(a).Cross(c.Sub(a)); cr.Len() > 0 {
			dir = cr.Normalize().Mul(length)
		}
		out := centroid.Add(dir)
		in := centroid.Sub(dir)
		outward = append(outward, centroid[0], centroid[1], centroid[2], out[0], out[1], out[2])
		inward = append(inward, centroid[0], centroid[1], centroid[2], in[0], in[1], in[2])
	}
	return outward, inward
}
