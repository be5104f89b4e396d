package render

import "github.com/fogleman/gg"

// DefaultScale is the number of pixels per meter.
const DefaultScale = 100.0

// Camera maps floorplan pixels (meters times scale) into a view centered on
// the device. Cameras are values; the renderer swaps them whole.
type Camera struct {
	Matrix  gg.Matrix
	Inverse gg.Matrix
}

// NewCamera translates by (-x·scale, y·scale) and then rotates by yaw
// (radians) about the origin.
func NewCamera(x, y, yaw, scale float64) Camera {
	m := gg.Rotate(yaw).Translate(-x*scale, y*scale)
	inv, _ := invert(m)
	return Camera{Matrix: m, Inverse: inv}
}

// IdentityCamera leaves pixels untransformed; it is the camera before any pose.
func IdentityCamera() Camera {
	return Camera{Matrix: gg.Identity(), Inverse: gg.Identity()}
}

// invert returns the inverse of an affine matrix. Singular matrices yield
// the identity and false.
func invert(m gg.Matrix) (gg.Matrix, bool) {
	det := m.XX*m.YY - m.XY*m.YX
	if det == 0 {
		return gg.Identity(), false
	}
	return gg.Matrix{
		XX: m.YY / det,
		YX: -m.YX / det,
		XY: -m.XY / det,
		YY: m.XX / det,
		X0: (m.XY*m.Y0 - m.YY*m.X0) / det,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) / det,
	}, true
}

func transformPath(p Path, m gg.Matrix) Path {
	out := Path{Points: make([]gg.Point, len(p.Points)), Closed: p.Closed}
	for i, pt := range p.Points {
		x, y := m.TransformPoint(pt.X, pt.Y)
		out.Points[i] = gg.Point{X: x, Y: y}
	}
	return out
}
