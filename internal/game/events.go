package game

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// Event is an input event consumed by Explorer.HandleEvent.
type Event interface {
	event()
}

// ResizeEvent reports a new window size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// PointerDownEvent is a button press at a screen position.
type PointerDownEvent struct {
	Pos    Point
	Button MouseButton
}

// PointerUpEvent is a button release at a screen position.
type PointerUpEvent struct {
	Pos    Point
	Button MouseButton
}

// PointerMoveEvent is cursor motion; Delta is relative to the previous position.
type PointerMoveEvent struct {
	Pos   Point
	Delta Point
}

// WheelEvent is a vertical scroll; DY > 0 is wheel up.
type WheelEvent struct {
	Pos Point
	DY  float64
}

// CopyEvent asks for the open card's text to be copied to the clipboard.
type CopyEvent struct{}

func (ResizeEvent) event()      {}
func (PointerDownEvent) event() {}
func (PointerUpEvent) event()   {}
func (PointerMoveEvent) event() {}
func (WheelEvent) event()       {}
func (CopyEvent) event()        {}
