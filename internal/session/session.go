// Package session holds the screen-flow state machine for one capture
// session. States carry their own payloads, so an image preview without an
// image or a data-input screen without a pending product number cannot be
// represented. Nothing here is persisted.
package session

import (
	"errors"
	"image"
	"sync"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenCamera
	ScreenImagePreview
	ScreenDataInput
	ScreenInventoryList
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenCamera:
		return "camera"
	case ScreenImagePreview:
		return "imagePreview"
	case ScreenDataInput:
		return "dataInput"
	case ScreenInventoryList:
		return "inventoryList"
	default:
		return "unknown"
	}
}

// ErrBadTransition is returned when a transition is requested from a state
// that does not allow it. The machine stays where it was.
var ErrBadTransition = errors.New("transition not allowed from current screen")

// EventType identifies session events the UI subscribes to.
type EventType int

const (
	// EventScreenChanged fires after every transition; data is the new Screen.
	EventScreenChanged EventType = iota
	// EventRecordsChanged fires when the store contents changed; data is nil.
	EventRecordsChanged
	// EventUnitsChanged fires when packaging units changed; data is nil.
	EventUnitsChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// state is the tagged union of screen + payload.
type state interface {
	screen() Screen
}

type startState struct{}
type cameraState struct{}
type listState struct{}

type previewState struct {
	img        image.Image
	generation uint64
}

type dataInputState struct {
	img           image.Image
	generation    uint64
	productNumber string
	manual        bool
}

func (startState) screen() Screen     { return ScreenStart }
func (cameraState) screen() Screen    { return ScreenCamera }
func (listState) screen() Screen      { return ScreenInventoryList }
func (previewState) screen() Screen   { return ScreenImagePreview }
func (dataInputState) screen() Screen { return ScreenDataInput }

// Session is the flow controller. It runs for the lifetime of the process;
// no state is terminal. Safe for use from UI callbacks and recognition
// completions alike.
type Session struct {
	mu         sync.Mutex
	state      state
	generation uint64

	listenerMu sync.RWMutex
	listeners  map[EventType][]EventListener
}

// New creates a session on the start screen.
func New() *Session {
	return &Session{
		state:     startState{},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.listenerMu.Lock()
	s.listeners[event] = append(s.listeners[event], listener)
	s.listenerMu.Unlock()
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.listenerMu.RLock()
	listeners := s.listeners[event]
	s.listenerMu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

// Screen returns the active screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.screen()
}

// CapturedImage returns the image carried by the preview or data-input
// screen, or nil.
func (s *Session) CapturedImage() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st := s.state.(type) {
	case previewState:
		return st.img
	case dataInputState:
		return st.img
	}
	return nil
}

// Generation identifies the current capture. Recognition results started
// against an older generation are discarded.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// PendingProductNumber returns the recognized (or manually requested)
// product number carried into the data-input screen.
func (s *Session) PendingProductNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.state.(dataInputState); ok {
		return d.productNumber
	}
	return ""
}

func (s *Session) transition(next state) {
	s.state = next
	scr := next.screen()
	s.mu.Unlock()
	s.Emit(EventScreenChanged, scr)
	s.mu.Lock()
}

// StartCapture moves start → camera.
func (s *Session) StartCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case startState:
		s.transition(cameraState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// ViewList moves start → inventoryList or dataInput → inventoryList.
func (s *Session) ViewList() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case startState, dataInputState:
		s.transition(listState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// ImageCaptured moves camera → imagePreview, carrying the still image and
// bumping the capture generation.
func (s *Session) ImageCaptured(img image.Image) error {
	if img == nil {
		return errors.New("captured image is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case cameraState:
		s.generation++
		s.transition(previewState{img: img, generation: s.generation})
		return nil
	default:
		return ErrBadTransition
	}
}

// AcceptRecognition moves imagePreview → dataInput when the recognition
// result belongs to the current capture. Results from a superseded capture
// (after retake or cancel) are reported stale and ignored.
func (s *Session) AcceptRecognition(generation uint64, productNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.(previewState)
	if !ok {
		return false, ErrBadTransition
	}
	if generation != p.generation {
		return false, nil
	}
	s.transition(dataInputState{img: p.img, generation: p.generation, productNumber: productNumber})
	return true, nil
}

// ManualEntry moves imagePreview → dataInput without a recognition result,
// for labels the engine cannot read.
func (s *Session) ManualEntry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st := s.state.(type) {
	case previewState:
		s.transition(dataInputState{img: st.img, generation: st.generation, manual: true})
		return nil
	default:
		return ErrBadTransition
	}
}

// Retake moves imagePreview → camera, discarding the captured image. Any
// in-flight recognition for the discarded capture becomes stale.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case previewState:
		s.transition(cameraState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// BackToPreview moves dataInput → imagePreview, re-showing the same capture
// so a different region can be selected. The generation is unchanged; it is
// still the same image.
func (s *Session) BackToPreview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch st := s.state.(type) {
	case dataInputState:
		s.transition(previewState{img: st.img, generation: st.generation})
		return nil
	default:
		return ErrBadTransition
	}
}

// SaveSucceeded moves dataInput → start, clearing all carried state.
func (s *Session) SaveSucceeded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case dataInputState:
		s.transition(startState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// AddMore moves dataInput → camera for another capture without visiting the
// start screen. The persisted list is untouched.
func (s *Session) AddMore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case dataInputState:
		s.transition(cameraState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// AddNew moves inventoryList → camera.
func (s *Session) AddNew() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.(type) {
	case listState:
		s.transition(cameraState{})
		return nil
	default:
		return ErrBadTransition
	}
}

// Cancel returns to the start screen from any screen, dropping carried
// state. On the start screen it is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.(startState); ok {
		return
	}
	s.transition(startState{})
}
