package geom

// Plane selects which pair of 3D axes the 2D layout occupies. The first
// letter names the main axis (layout direction), the second the cross axis;
// the remaining axis is the depth axis and is always left at zero.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneYZ
	PlaneXZ
)

// String returns the lowercase plane name.
func (p Plane) String() string {
	switch p {
	case PlaneYZ:
		return "yz"
	case PlaneXZ:
		return "xz"
	default:
		return "xy"
	}
}

// ParsePlane maps a plane name to its value. Unknown names fall back to
// PlaneXY, matching the enum's zero value; validation happens at the
// normalization boundary, not here.
func ParsePlane(s string) Plane {
	switch s {
	case "yz":
		return PlaneYZ
	case "xz":
		return PlaneXZ
	default:
		return PlaneXY
	}
}

// MainAxis returns the axis index (0=x, 1=y, 2=z) of the layout direction.
func (p Plane) MainAxis() int {
	if p == PlaneYZ {
		return 1
	}
	return 0
}

// CrossAxis returns the axis index of the perpendicular in-plane axis.
func (p Plane) CrossAxis() int {
	if p == PlaneXY {
		return 1
	}
	return 2
}

// DepthAxis returns the axis index of the plane's implicit third axis.
func (p Plane) DepthAxis() int {
	switch p {
	case PlaneYZ:
		return 0
	case PlaneXZ:
		return 1
	default:
		return 2
	}
}

// Position maps 2D layout coordinates onto the plane's 3D axes. The cross
// coordinate is negated: layout "top" grows downward while the cross axis in
// 3D grows upward. The depth axis stays zero.
func (p Plane) Position(main, cross float64) Vec3 {
	var v Vec3
	v = v.SetComponent(p.MainAxis(), main)
	v = v.SetComponent(p.CrossAxis(), -cross)
	return v
}

// Extents projects a 3D size onto the plane, returning the width along the
// main axis and the height along the cross axis.
func (p Plane) Extents(size Vec3) (width, height float64) {
	return size.Component(p.MainAxis()), size.Component(p.CrossAxis())
}
