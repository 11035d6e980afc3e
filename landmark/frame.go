// Package landmark carries body-landmark frames from the tracking collaborator
package landmark

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/wall-blaster/parameter"
)

// ErrMalformedFrame wraps every decode failure
var ErrMalformedFrame = errors.New("malformed landmark frame")

// Landmark indices consumed by the game
const (
	LeftWrist  = parameter.LandmarkLeftWrist
	RightWrist = parameter.LandmarkRightWrist
)

// Point is one normalized landmark, x and y in [0,1] with y growing downward
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Frame is one delivery from the tracker, Landmarks is empty when no body was detected
type Frame struct {
	TimestampMs int64   `json:"t"`
	Landmarks   []Point `json:"landmarks"`
}

// Empty reports a frame with no body detected
func (f Frame) Empty() bool {
	return len(f.Landmarks) == 0
}

// Landmark returns the point at index i if present
func (f Frame) Landmark(i int) (Point, bool) {
	if i < 0 || i >= len(f.Landmarks) {
		return Point{}, false
	}
	return f.Landmarks[i], true
}

// Decode parses one JSON frame, a null or missing landmark list is an empty frame
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if f.TimestampMs < 0 {
		return Frame{}, fmt.Errorf("%w: negative timestamp %d", ErrMalformedFrame, f.TimestampMs)
	}
	return f, nil
}

// Encode serializes a frame in the feed format
func Encode(f Frame) ([]byte, error) {
	return json.Marshal(f)
}
