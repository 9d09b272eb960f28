package screens

import (
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/capture"
	"stockscan/internal/session"
	"stockscan/ui/dialogs"
	"stockscan/ui/prefs"
)

// previewInterval paces the live viewfinder refresh.
const previewInterval = 100 * time.Millisecond

// Viewfinder frames are scaled down from the full capture resolution; the
// full frame is only kept for the still that goes to recognition.
const (
	viewfinderMaxW = 960
	viewfinderMaxH = 540
)

// Camera is the capture screen. It holds the device open only while the
// screen is visible; every exit path releases the handle so other
// applications can use the camera.
type Camera struct {
	session *session.Session
	prefs   *prefs.Prefs
	window  fyne.Window

	mu     sync.Mutex
	device *capture.Device
	stop   chan struct{}

	viewfinder *fynecanvas.Image
	status     *widget.Label
	content    fyne.CanvasObject
}

// NewCamera creates the camera screen.
func NewCamera(sess *session.Session, p *prefs.Prefs, window fyne.Window) *Camera {
	c := &Camera{
		session: sess,
		prefs:   p,
		window:  window,
	}

	c.viewfinder = fynecanvas.NewImageFromImage(nil)
	c.viewfinder.FillMode = fynecanvas.ImageFillContain
	c.viewfinder.SetMinSize(fyne.NewSize(480, 360))
	c.status = widget.NewLabel("카메라 준비 중...")

	captureBtn := widget.NewButton("촬영", c.onCapture)
	fileBtn := widget.NewButton("사진 불러오기", c.onOpenFile)
	cancelBtn := widget.NewButton("취소", func() {
		c.session.Cancel()
	})

	buttons := container.NewHBox(captureBtn, fileBtn, cancelBtn)
	c.content = container.NewBorder(
		c.status,
		container.NewCenter(buttons),
		nil, nil,
		c.viewfinder,
	)
	return c
}

// Content returns the screen's root object.
func (c *Camera) Content() fyne.CanvasObject {
	return c.content
}

// Show opens the capture device and starts the viewfinder loop.
func (c *Camera) Show() {
	index := c.prefs.Int(prefs.KeyCameraIndex, 0)
	timeout := time.Duration(c.prefs.Int(prefs.KeyCaptureTimeout, 0)) * time.Second

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device != nil {
		return
	}

	dev, err := capture.OpenDevice(index, timeout)
	if err != nil {
		log.Printf("open camera %d: %v", index, err)
		c.status.SetText(dialogs.ErrorMessage(err) + " 사진 불러오기를 이용해주세요.")
		return
	}
	c.device = dev
	c.status.SetText("라벨이 선명하게 보이도록 맞춘 뒤 촬영해주세요")

	stop := make(chan struct{})
	c.stop = stop
	go c.viewfinderLoop(stop)
}

// Hide stops the viewfinder and releases the device.
func (c *Camera) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	if c.device != nil {
		if err := c.device.Close(); err != nil {
			log.Printf("close camera: %v", err)
		}
		c.device = nil
	}
	c.viewfinder.Image = nil
	c.status.SetText("카메라 준비 중...")
}

// viewfinderLoop refreshes the live preview until stopped. Grabbing happens
// outside c.mu so screen transitions never wait on a stalled device; the
// device synchronizes grab against close internally.
func (c *Camera) viewfinderLoop(stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		dev := c.snapshotDevice()
		if dev == nil {
			return
		}
		frame, err := dev.Grab()
		if err == nil {
			c.viewfinder.Image = capture.FitPreview(frame, viewfinderMaxW, viewfinderMaxH)
			c.viewfinder.Refresh()
		}
		time.Sleep(previewInterval)
	}
}

// snapshotDevice returns the current device handle without holding the lock
// across a grab.
func (c *Camera) snapshotDevice() *capture.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// onCapture grabs a still at full resolution and hands it to the session.
func (c *Camera) onCapture() {
	dev := c.snapshotDevice()
	if dev == nil {
		dialog.ShowInformation("알림", "카메라가 열려 있지 않습니다. 사진 불러오기를 이용해주세요.", c.window)
		return
	}

	frame, err := dev.Grab()
	if err != nil {
		dialogs.ShowError(err, c.window)
		return
	}
	if err := c.session.ImageCaptured(frame); err != nil {
		log.Printf("image captured: %v", err)
	}
}

// onOpenFile lets the user pick an existing photo instead of using the
// camera.
func (c *Camera) onOpenFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		img, err := capture.LoadFile(path)
		if err != nil {
			dialogs.ShowError(err, c.window)
			return
		}
		if err := c.session.ImageCaptured(img); err != nil {
			log.Printf("image captured from file: %v", err)
		}
	}, c.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}))
	fd.Show()
}
