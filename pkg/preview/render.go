// Package preview rasterizes split bodies into a flat-shaded image, one
// palette color per body.
package preview

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
)

// Options control the rendered image.
type Options struct {
	Size        int        // output width and height in pixels
	Supersample int        // render at Size*Supersample, then downscale
	View        mgl64.Mat3 // world to view rotation; zero means IsometricView
}

// DefaultSize is used when Options.Size is not positive.
const DefaultSize = 512

// TopView looks straight down the -z axis.
var TopView = mgl64.Ident3()

// IsometricView turns the model 45 degrees about z and tilts it toward the
// viewer.
var IsometricView = mgl64.Rotate3DX(mgl64.DegToRad(-55)).Mul3(mgl64.Rotate3DZ(mgl64.DegToRad(-45)))

// NamedView returns the view rotation for "iso" or "top".
func NamedView(name string) (mgl64.Mat3, bool) {
	switch name {
	case "iso":
		return IsometricView, true
	case "top":
		return TopView, true
	}
	return mgl64.Mat3{}, false
}

var lightDir = mgl64.Vec3{0.3, 0.5, 1}.Normalize()

const (
	ambient = 0.35
	diffuse = 0.65
)

type frameBuffer struct {
	img  *image.RGBA
	zbuf []float64
}

func newFrameBuffer(size int) *frameBuffer {
	zbuf := make([]float64, size*size)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &frameBuffer{img: image.NewRGBA(image.Rect(0, 0, size, size)), zbuf: zbuf}
}

// Render draws each body in its palette color on a transparent background.
// Depth is resolved per pixel; shading is per face.
func Render(bodies [][]float32, opts Options) *image.RGBA {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	ss := opts.Supersample
	if ss <= 0 {
		ss = 1
	}
	view := opts.View
	if view == (mgl64.Mat3{}) {
		view = IsometricView
	}

	renderSize := size * ss
	fb := newFrameBuffer(renderSize)

	projected := make([][]mgl64.Vec3, len(bodies))
	min := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for b, pos := range bodies {
		pts := make([]mgl64.Vec3, len(pos)/3)
		for i := range pts {
			p := view.Mul3x1(mgl64.Vec3{float64(pos[3*i]), float64(pos[3*i+1]), float64(pos[3*i+2])})
			pts[i] = p
			for k := 0; k < 3; k++ {
				min[k] = math.Min(min[k], p[k])
				max[k] = math.Max(max[k], p[k])
			}
		}
		projected[b] = pts
	}
	if math.IsInf(min[0], 1) {
		return downsample(fb.img, size)
	}

	center := min.Add(max).Mul(0.5)
	span := math.Max(max[0]-min[0], max[1]-min[1])
	if span < 1e-9 {
		span = 1e-9
	}
	margin := float64(4 * ss)
	scale := (float64(renderSize) - 2*margin) / span
	half := float64(renderSize) / 2

	toScreen := func(p mgl64.Vec3) mgl64.Vec3 {
		return mgl64.Vec3{
			(p[0]-center[0])*scale + half,
			half - (p[1]-center[1])*scale,
			p[2],
		}
	}

	for b, pts := range projected {
		c := BodyColor(b)
		for t := 0; t+2 < len(pts); t += 3 {
			n := pts[t+1].Sub(pts[t]).Cross(pts[t+2].Sub(pts[t]))
			l := n.Len()
			if l < 1e-12 {
				continue
			}
			shade := ambient + diffuse*math.Abs(n.Mul(1/l).Dot(lightDir))
			rgba := [4]uint8{
				scaleChannel(c.R, shade),
				scaleChannel(c.G, shade),
				scaleChannel(c.B, shade),
				255,
			}
			fb.rasterize(toScreen(pts[t]), toScreen(pts[t+1]), toScreen(pts[t+2]), rgba)
		}
	}
	return downsample(fb.img, size)
}

// rasterize fills a screen-space triangle, keeping the nearest fragment.
// Larger view z is closer to the viewer.
func (fb *frameBuffer) rasterize(a, b, c mgl64.Vec3, rgba [4]uint8) {
	size := fb.img.Rect.Dx()

	minX := int(math.Floor(math.Min(math.Min(a[0], b[0]), c[0])))
	maxX := int(math.Ceil(math.Max(math.Max(a[0], b[0]), c[0])))
	minY := int(math.Floor(math.Min(math.Min(a[1], b[1]), c[1])))
	maxY := int(math.Ceil(math.Max(math.Max(a[1], b[1]), c[1])))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > size-1 {
		maxX = size - 1
	}
	if maxY > size-1 {
		maxY = size - 1
	}

	det := (b[1]-c[1])*(a[0]-c[0]) + (c[0]-b[0])*(a[1]-c[1])
	if math.Abs(det) < 1e-9 {
		return
	}
	invDet := 1 / det

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5 - c[1]
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5 - c[0]
			w0 := ((b[1]-c[1])*px + (c[0]-b[0])*py) * invDet
			w1 := ((c[1]-a[1])*px + (a[0]-c[0])*py) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a[2] + w1*b[2] + w2*c[2]
			zi := sy*size + sx
			if z <= fb.zbuf[zi] {
				continue
			}
			fb.zbuf[zi] = z
			off := fb.img.PixOffset(sx, sy)
			copy(fb.img.Pix[off:off+4], rgba[:])
		}
	}
}

// downsample scales a supersampled render to size x size with CatmullRom.
// Drawn pixels are opaque and the background is zero, so the buffer is
// already premultiplied.
func downsample(img *image.RGBA, size int) *image.RGBA {
	if img.Rect.Dx() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func scaleChannel(v uint8, shade float64) uint8 {
	f := float64(v)*shade + 0.5
	if f > 255 {
		return 255
	}
	return uint8(f)
}
