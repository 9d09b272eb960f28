// Package capture acquires still images, either from a video device or from
// an image file picked by the user.
package capture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Capture failures the UI maps to distinct user-facing messages.
var (
	ErrNotSupported     = errors.New("video capture is not supported on this system")
	ErrDeviceNotFound   = errors.New("camera not found")
	ErrPermissionDenied = errors.New("camera access denied")
	ErrDeviceBusy       = errors.New("camera is unavailable, possibly in use by another application")
	ErrNoFrame          = errors.New("camera produced no frame before the deadline")
)

// Preferred still resolution; the driver may negotiate down.
const (
	preferredWidth  = 1920
	preferredHeight = 1080
)

// DefaultFrameTimeout bounds how long Grab waits for a ready frame.
const DefaultFrameTimeout = 10 * time.Second

// Device is an exclusive handle on a video capture device. Close must be
// called on every exit path; a leaked handle keeps the device locked for
// every other application. Grab and Close may be called from different
// goroutines; Close interrupts a Grab waiting on a stalled device.
type Device struct {
	mu      sync.Mutex
	cap     *gocv.VideoCapture
	index   int
	timeout time.Duration
}

// platformSupported reports whether goos has a capture backend.
func platformSupported(goos string) bool {
	switch goos {
	case "linux", "darwin", "windows":
		return true
	}
	return false
}

// OpenDevice acquires the capture device at index (0 is the system default).
// The returned error distinguishes a missing device, denied access, and a
// device held by another process.
func OpenDevice(index int, timeout time.Duration) (*Device, error) {
	if !platformSupported(runtime.GOOS) {
		return nil, fmt.Errorf("%s: %w", runtime.GOOS, ErrNotSupported)
	}
	if timeout <= 0 {
		timeout = DefaultFrameTimeout
	}
	if err := probeDevice(index); err != nil {
		return nil, err
	}

	cap, err := gocv.OpenVideoCapture(index)
	if err != nil || !cap.IsOpened() {
		if cap != nil {
			cap.Close()
		}
		return nil, fmt.Errorf("open camera %d: %w", index, ErrDeviceBusy)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, preferredWidth)
	cap.Set(gocv.VideoCaptureFrameHeight, preferredHeight)

	return &Device{cap: cap, index: index, timeout: timeout}, nil
}

// probeDevice checks for existence and readability before OpenCV grabs the
// device, so open failures can be reported precisely. Only V4L2 paths can be
// probed; elsewhere the generic open error has to do.
func probeDevice(index int) error {
	if runtime.GOOS != "linux" {
		return nil
	}
	path := fmt.Sprintf("/dev/video%d", index)
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s: %w", path, ErrDeviceNotFound)
	case os.IsPermission(err):
		return fmt.Errorf("%s: %w", path, ErrPermissionDenied)
	case err != nil:
		return fmt.Errorf("%s: %w", path, ErrDeviceBusy)
	}
	f.Close()
	return nil
}

// readFrame attempts one read under the device lock. The second return is
// false once the device has been closed.
func (d *Device) readFrame(mat *gocv.Mat) (ready, open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cap == nil {
		return false, false
	}
	return d.cap.Read(mat) && !mat.Empty(), true
}

// Grab waits for a ready frame and returns it as a still image. The capture
// stream stays open for further grabs until Close. The lock is held only per
// read attempt, so a concurrent Close is never blocked for the whole frame
// deadline.
func (d *Device) Grab() (image.Image, error) {
	mat := gocv.NewMat()
	defer mat.Close()

	deadline := time.Now().Add(d.timeout)
	for {
		ready, open := d.readFrame(&mat)
		if !open {
			return nil, ErrDeviceBusy
		}
		if ready {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("camera %d: %w", d.index, ErrNoFrame)
		}
		time.Sleep(50 * time.Millisecond)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("decode camera frame: %w", err)
	}
	return img, nil
}

// Close releases the device handle. Safe to call more than once. A Grab in
// flight on another goroutine returns once its current read attempt finishes.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cap == nil {
		return nil
	}
	err := d.cap.Close()
	d.cap = nil
	return err
}
