package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wall-blaster/landmark"
)

// Control is a user command from the terminal
type Control uint8

const (
	ControlStart Control = iota + 1
	ControlQuit
)

func (c Control) String() string {
	switch c {
	case ControlStart:
		return "start"
	case ControlQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// poseLandmarks is the landmark count of a full-body pose frame
const poseLandmarks = 33

// MouseWrists emulates the two wrists from mouse motion
// Plain motion moves the right wrist, motion with the primary button held moves the left
type MouseWrists struct {
	left, right landmark.Point
	now         func() time.Time
}

// NewMouseWrists starts both wrists at rest in the lower middle of the view
func NewMouseWrists(now func() time.Time) *MouseWrists {
	return &MouseWrists{
		left:  landmark.Point{X: 0.4, Y: 0.8, Visibility: 1},
		right: landmark.Point{X: 0.6, Y: 0.8, Visibility: 1},
		now:   now,
	}
}

// Move records a mouse position in a w x h grid and returns the resulting frame
func (m *MouseWrists) Move(x, y, w, h int, buttons tcell.ButtonMask) landmark.Frame {
	p := landmark.Point{X: norm(x, w), Y: norm(y, h), Visibility: 1}
	if buttons&tcell.ButtonPrimary != 0 {
		m.left = p
	} else {
		m.right = p
	}

	pts := make([]landmark.Point, poseLandmarks)
	pts[landmark.LeftWrist] = m.left
	pts[landmark.RightWrist] = m.right
	return landmark.Frame{TimestampMs: m.now().UnixMilli(), Landmarks: pts}
}

func norm(v, size int) float64 {
	if size <= 1 {
		return 0
	}
	f := (float64(v) + 0.5) / float64(size)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// KeyControl maps a key event to a control
func KeyControl(ev *tcell.EventKey) (Control, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ControlStart, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ControlQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return ControlStart, true
		case 'q', 'Q':
			return ControlQuit, true
		}
	}
	return 0, false
}

// PumpInput forwards terminal events as controls and, if mouse is set, emulated wrist frames
// It only sends on the channels; a full frame channel drops the frame
// Returns when ctx is done or the screen stops delivering events
func PumpInput(ctx context.Context, screen tcell.Screen, mouse *MouseWrists, controls chan<- Control, frames chan<- landmark.Frame) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				c, ok := KeyControl(ev)
				if !ok {
					continue
				}
				select {
				case controls <- c:
				case <-ctx.Done():
					return nil
				}
			case *tcell.EventMouse:
				if mouse == nil {
					continue
				}
				x, y := ev.Position()
				w, h := screen.Size()
				select {
				case frames <- mouse.Move(x, y, w, h-1, ev.Buttons()):
				default:
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}
