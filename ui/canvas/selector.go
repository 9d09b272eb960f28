// Package canvas provides the selectable image widget used by the preview
// screen: it displays a captured still scaled to fit and lets the user
// rubber-band the label region to recognize.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"stockscan/pkg/geometry"
)

var (
	bandFill   = color.NRGBA{R: 0x2e, G: 0x7d, B: 0xff, A: 0x30}
	bandStroke = color.NRGBA{R: 0x2e, G: 0x7d, B: 0xff, A: 0xff}
)

// SelectableImage displays a still image and reports dragged selections in
// source-image pixel coordinates. The image is letterboxed to fit the widget;
// drags outside the drawn image area are clamped to its edge. Selections at
// or below the minimum size are discarded without a callback.
type SelectableImage struct {
	widget.BaseWidget

	img     image.Image
	display *fynecanvas.Image
	band    *fynecanvas.Rectangle

	sel       *geometry.Selection
	selecting bool
	// Drag endpoints in widget coordinates, for drawing the band.
	dragStart fyne.Position
	dragEnd   fyne.Position

	onSelect func(region geometry.RectInt)
}

// NewSelectableImage creates the widget with no image. Call SetImage before
// showing it.
func NewSelectableImage() *SelectableImage {
	si := &SelectableImage{
		display: fynecanvas.NewImageFromImage(nil),
		band:    fynecanvas.NewRectangle(bandFill),
	}
	si.display.FillMode = fynecanvas.ImageFillContain
	si.band.StrokeColor = bandStroke
	si.band.StrokeWidth = 2
	si.band.Hide()
	si.ExtendBaseWidget(si)
	return si
}

// SetImage replaces the displayed image and drops any selection in progress.
func (si *SelectableImage) SetImage(img image.Image) {
	si.img = img
	si.display.Image = img
	si.selecting = false
	si.band.Hide()
	si.Refresh()
}

// OnSelect sets the callback invoked with the selected region in image pixel
// coordinates when a drag finishes above the minimum size.
func (si *SelectableImage) OnSelect(callback func(region geometry.RectInt)) {
	si.onSelect = callback
}

// drawnArea returns the position and size of the letterboxed image inside the
// widget, in widget coordinates.
func (si *SelectableImage) drawnArea() (offX, offY, w, h float32) {
	size := si.Size()
	if si.img == nil || size.Width <= 0 || size.Height <= 0 {
		return 0, 0, size.Width, size.Height
	}
	bounds := si.img.Bounds()
	imgW, imgH := float32(bounds.Dx()), float32(bounds.Dy())
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, size.Width, size.Height
	}

	scale := size.Width / imgW
	if s := size.Height / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	offX = (size.Width - w) / 2
	offY = (size.Height - h) / 2
	return offX, offY, w, h
}

// clampToDrawn maps a widget position into the drawn image area.
func clampToDrawn(pos fyne.Position, offX, offY, w, h float32) fyne.Position {
	x := pos.X - offX
	y := pos.Y - offY
	if x < 0 {
		x = 0
	} else if x > w {
		x = w
	}
	if y < 0 {
		y = 0
	} else if y > h {
		y = h
	}
	return fyne.NewPos(x, y)
}

// Dragged implements fyne.Draggable. The first event anchors the selection.
func (si *SelectableImage) Dragged(ev *fyne.DragEvent) {
	if si.img == nil {
		return
	}
	offX, offY, w, h := si.drawnArea()
	if w <= 0 || h <= 0 {
		return
	}
	pos := clampToDrawn(ev.Position, offX, offY, w, h)

	if !si.selecting {
		si.selecting = true
		bounds := si.img.Bounds()
		si.sel = geometry.NewSelection(bounds.Dx(), bounds.Dy(), float64(w), float64(h))
		si.sel.Start(float64(pos.X), float64(pos.Y))
		si.dragStart = pos
	}
	si.sel.Extend(float64(pos.X), float64(pos.Y))
	si.dragEnd = pos
	si.updateBand(offX, offY)
}

// DragEnd implements fyne.Draggable and reports the finished selection.
func (si *SelectableImage) DragEnd() {
	if !si.selecting {
		return
	}
	si.selecting = false
	si.band.Hide()
	si.Refresh()

	region, ok := si.sel.Finish()
	if ok && si.onSelect != nil {
		si.onSelect(region)
	}
}

// updateBand positions the rubber-band rectangle over the current drag.
func (si *SelectableImage) updateBand(offX, offY float32) {
	x1, x2 := si.dragStart.X, si.dragEnd.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := si.dragStart.Y, si.dragEnd.Y
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	si.band.Move(fyne.NewPos(offX+x1, offY+y1))
	si.band.Resize(fyne.NewSize(x2-x1, y2-y1))
	si.band.Show()
	si.band.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (si *SelectableImage) CreateRenderer() fyne.WidgetRenderer {
	return &selectableImageRenderer{widget: si}
}

type selectableImageRenderer struct {
	widget *SelectableImage
}

func (r *selectableImageRenderer) Layout(size fyne.Size) {
	r.widget.display.Resize(size)
}

func (r *selectableImageRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *selectableImageRenderer) Refresh() {
	r.widget.display.Refresh()
}

func (r *selectableImageRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.display, r.widget.band}
}

func (r *selectableImageRenderer) Destroy() {}
