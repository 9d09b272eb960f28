package screens

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/recognize"
	"stockscan/internal/session"
	"stockscan/pkg/geometry"
	"stockscan/ui/canvas"
)

const (
	promptSelectRegion = "품번 영역을 드래그하여 선택해주세요"
	promptRecognizing  = "품번을 인식하는 중..."
	promptNoDigits     = "품번을 인식하지 못했습니다. 영역을 다시 선택해주세요"
)

// Preview shows the captured still and runs recognition on the dragged
// region. Recognition happens off the UI goroutine; a result that arrives
// after a retake or cancel belongs to a stale capture and is dropped by the
// session.
type Preview struct {
	session    *session.Session
	recognizer recognize.Recognizer

	selector *canvas.SelectableImage
	status   *widget.Label
	content  fyne.CanvasObject
}

// NewPreview creates the image preview screen.
func NewPreview(sess *session.Session, rec recognize.Recognizer) *Preview {
	p := &Preview{
		session:    sess,
		recognizer: rec,
	}

	p.selector = canvas.NewSelectableImage()
	p.selector.OnSelect(p.onRegionSelected)
	p.status = widget.NewLabel(promptSelectRegion)

	retakeBtn := widget.NewButton("다시 촬영", func() {
		if err := p.session.Retake(); err != nil {
			log.Printf("retake: %v", err)
		}
	})
	manualBtn := widget.NewButton("직접 입력", func() {
		if err := p.session.ManualEntry(); err != nil {
			log.Printf("manual entry: %v", err)
		}
	})
	cancelBtn := widget.NewButton("취소", func() {
		p.session.Cancel()
	})

	buttons := container.NewHBox(retakeBtn, manualBtn, cancelBtn)
	p.content = container.NewBorder(
		p.status,
		container.NewCenter(buttons),
		nil, nil,
		p.selector,
	)
	return p
}

// Content returns the screen's root object.
func (p *Preview) Content() fyne.CanvasObject {
	return p.content
}

// Show loads the session's captured image into the selector.
func (p *Preview) Show() {
	p.selector.SetImage(p.session.CapturedImage())
	p.status.SetText(promptSelectRegion)
}

// onRegionSelected runs OCR on the selected region. The generation recorded
// at selection time ties the result to this capture.
func (p *Preview) onRegionSelected(region geometry.RectInt) {
	img := p.session.CapturedImage()
	if img == nil {
		return
	}
	generation := p.session.Generation()
	p.status.SetText(promptRecognizing)

	go func() {
		product, err := p.recognizer.Recognize(img, region)
		if err != nil {
			log.Printf("recognize region %+v: %v", region, err)
		}

		if product == "" {
			// Still this capture? Then prompt to reselect.
			if p.session.Generation() == generation &&
				p.session.Screen() == session.ScreenImagePreview {
				p.status.SetText(promptNoDigits)
			}
			return
		}

		accepted, err := p.session.AcceptRecognition(generation, product)
		if err != nil || !accepted {
			// The capture was retaken or the flow moved on; drop the result.
			return
		}
	}()
}
