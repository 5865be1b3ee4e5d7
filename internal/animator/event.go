package animator

// Event is a host signal delivered to a running animator
type Event interface {
	isEvent()
}

// ResizeEvent reports that the surface changed size
type ResizeEvent struct{}

// PointerMoveEvent carries the pointer position in surface coordinates
type PointerMoveEvent struct {
	X, Y float64
}

// PointerLeaveEvent reports that the pointer left the tracked area
type PointerLeaveEvent struct{}

func (ResizeEvent) isEvent()       {}
func (PointerMoveEvent) isEvent()  {}
func (PointerLeaveEvent) isEvent() {}
