// Package x11 implements the platform collaborators for an X11 display
// through libX11 and libXfixes, loaded at run time with purego. Clipping is
// done with four XFixes pointer barriers around the clip rectangle.
package x11

import "github.com/Alia5/nativeinput/geom"

// XFixes barrier directions: the direction in which the pointer may cross.
const (
	barrierPositiveX = 1 << 0
	barrierPositiveY = 1 << 1
	barrierNegativeX = 1 << 2
	barrierNegativeY = 1 << 3
)

type barrier struct {
	x1, y1, x2, y2 int32
	directions     int32
}

// barriersFor returns the four barriers confining the pointer to r. Each
// barrier only lets the pointer cross towards the inside of r.
func barriersFor(r geom.Rect) [4]barrier {
	l, t := int32(r.Left()), int32(r.Top())
	rt, b := int32(r.Right()-1), int32(r.Bottom()-1)
	if rt < l {
		rt = l
	}
	if b < t {
		b = t
	}
	return [4]barrier{
		{x1: l, y1: t, x2: l, y2: b, directions: barrierPositiveX},
		{x1: rt, y1: t, x2: rt, y2: b, directions: barrierNegativeX},
		{x1: l, y1: t, x2: rt, y2: t, directions: barrierPositiveY},
		{x1: l, y1: b, x2: rt, y2: b, directions: barrierNegativeY},
	}
}
