// Package geom holds the integer point, size and rectangle value types shared
// by the input devices and the platform collaborators.
package geom

import "fmt"

// Point is a position in either client or screen space.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive.
type Rect struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// RectAt builds a rectangle from its origin and size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }
func (r Rect) Size() Size    { return Size{Width: r.Width, Height: r.Height} }

// Center uses integer division, matching how the OS cursor is recentred.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.Y >= r.Top() && p.X < r.Right() && p.Y < r.Bottom()
}

// Clamp returns p moved to the nearest point inside r. An empty rectangle
// clamps to its origin.
func (r Rect) Clamp(p Point) Point {
	if p.X >= r.Right() {
		p.X = r.Right() - 1
	}
	if p.Y >= r.Bottom() {
		p.Y = r.Bottom() - 1
	}
	if p.X < r.Left() {
		p.X = r.Left()
	}
	if p.Y < r.Top() {
		p.Y = r.Top()
	}
	return p
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
