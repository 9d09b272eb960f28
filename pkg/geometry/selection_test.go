package geometry

import (
	"image"
	"testing"
)

func TestSelectionMapsDisplayToImageCoords(t *testing.T) {
	// 2000x1000 image shown at 1000x500: everything scales by 2.
	sel := NewSelection(2000, 1000, 1000, 500)
	sel.Start(25, 25)
	sel.Extend(75, 45)

	rect, ok := sel.Finish()
	if !ok {
		t.Fatal("selection should be accepted")
	}
	want := RectInt{X: 50, Y: 50, Width: 100, Height: 40}
	if rect != want {
		t.Errorf("rect: got %+v, want %+v", rect, want)
	}
}

func TestSelectionNormalizesReverseDrag(t *testing.T) {
	sel := NewSelection(100, 100, 100, 100)
	sel.Start(80, 90)
	sel.Extend(20, 30)

	rect, ok := sel.Finish()
	if !ok {
		t.Fatal("selection should be accepted")
	}
	want := RectInt{X: 20, Y: 30, Width: 60, Height: 60}
	if rect != want {
		t.Errorf("rect: got %+v, want %+v", rect, want)
	}
}

func TestSelectionRejectsTinyDrags(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
	}{
		{"both tiny", 5, 5},
		{"narrow", 5, 50},
		{"short", 50, 5},
		{"exactly at threshold", 10, 10},
		{"width at threshold", 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(200, 200, 200, 200)
			sel.Start(0, 0)
			sel.Extend(tt.dx, tt.dy)
			if _, ok := sel.Finish(); ok {
				t.Errorf("drag of %vx%v should be discarded", tt.dx, tt.dy)
			}
		})
	}
}

func TestSelectionAcceptsJustAboveThreshold(t *testing.T) {
	sel := NewSelection(200, 200, 200, 200)
	sel.Start(0, 0)
	sel.Extend(11, 11)
	if _, ok := sel.Finish(); !ok {
		t.Error("11x11 drag should be accepted")
	}
}

func TestSelectionExtendIgnoredBeforeStart(t *testing.T) {
	sel := NewSelection(100, 100, 100, 100)
	sel.Extend(50, 50)
	if sel.Active() {
		t.Error("selection should not be active before Start")
	}
}

func TestRectIntClamp(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name string
		in   RectInt
		want RectInt
	}{
		{"inside", RectInt{10, 10, 20, 20}, RectInt{10, 10, 20, 20}},
		{"negative origin", RectInt{-10, -10, 30, 30}, RectInt{0, 0, 20, 20}},
		{"overflow", RectInt{90, 90, 30, 30}, RectInt{90, 90, 10, 10}},
		{"fully outside", RectInt{200, 200, 10, 10}, RectInt{200, 200, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(bounds); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
