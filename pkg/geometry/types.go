// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x, y, width, height int) RectInt {
	return RectInt{X: x, Y: y, Width: width, Height: height}
}

// Empty returns true if the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ToImageRect converts to a standard library image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clamp restricts the rectangle to the given image bounds.
func (r RectInt) Clamp(bounds image.Rectangle) RectInt {
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	if x < bounds.Min.X {
		w -= bounds.Min.X - x
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		h -= bounds.Min.Y - y
		y = bounds.Min.Y
	}
	if x+w > bounds.Max.X {
		w = bounds.Max.X - x
	}
	if y+h > bounds.Max.Y {
		h = bounds.Max.Y - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return RectInt{X: x, Y: y, Width: w, Height: h}
}
