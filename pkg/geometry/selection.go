package geometry

import "math"

// MinSelectionSize is the minimum width and height, in image pixels, that a
// dragged selection must exceed to count as deliberate. Anything smaller is
// treated as an accidental tap.
const MinSelectionSize = 10

// Selection accumulates a rubber-band drag in display coordinates and maps it
// into source-image pixel coordinates. Display and image sizes usually differ
// because the image is scaled to fit the screen.
type Selection struct {
	scaleX, scaleY float64
	start, end     Point2D
	active         bool
}

// NewSelection creates a Selection for an image of imgW×imgH pixels rendered
// at dispW×dispH display units. Zero display dimensions disable scaling.
func NewSelection(imgW, imgH int, dispW, dispH float64) *Selection {
	s := &Selection{scaleX: 1, scaleY: 1}
	if dispW > 0 && dispH > 0 {
		s.scaleX = float64(imgW) / dispW
		s.scaleY = float64(imgH) / dispH
	}
	return s
}

// Start begins a drag at the given display position.
func (s *Selection) Start(x, y float64) {
	s.start = NewPoint2D(x*s.scaleX, y*s.scaleY)
	s.end = s.start
	s.active = true
}

// Extend moves the drag endpoint to the given display position.
func (s *Selection) Extend(x, y float64) {
	if !s.active {
		return
	}
	s.end = NewPoint2D(x*s.scaleX, y*s.scaleY)
}

// Active reports whether a drag is in progress.
func (s *Selection) Active() bool {
	return s.active
}

// Rect returns the current selection as a normalized rectangle in image
// pixel coordinates.
func (s *Selection) Rect() RectInt {
	x1, x2 := math.Min(s.start.X, s.end.X), math.Max(s.start.X, s.end.X)
	y1, y2 := math.Min(s.start.Y, s.end.Y), math.Max(s.start.Y, s.end.Y)
	return RectInt{
		X:      int(x1),
		Y:      int(y1),
		Width:  int(x2 - x1),
		Height: int(y2 - y1),
	}
}

// Finish ends the drag and returns the selected rectangle in image pixel
// coordinates. The second return value is false when either dimension is at
// or below MinSelectionSize; such selections are discarded.
func (s *Selection) Finish() (RectInt, bool) {
	rect := s.Rect()
	s.active = false
	if rect.Width <= MinSelectionSize || rect.Height <= MinSelectionSize {
		return RectInt{}, false
	}
	return rect, true
}
