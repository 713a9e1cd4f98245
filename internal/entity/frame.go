package entity

import (
	"strconv"
	"strings"
)

const (
	// AllPins is the number of pins standing at the start of a frame.
	AllPins = 10

	// MaxFrames is the number of frames in a complete game.
	MaxFrames = 10

	RollSeparator  = ","
	FrameSeparator = " "
)

// Frame holds the rolls of one frame. A strike keeps Second at 0.
// Only the tenth frame of a game may carry a fill roll.
type Frame struct {
	First   int  `json:"first"`
	Second  int  `json:"second"`
	Fill    int  `json:"fill,omitempty"`
	HasFill bool `json:"has_fill,omitempty"`
}

func NewFrame(first, second int) Frame {
	return Frame{
		First:  first,
		Second: second,
	}
}

func NewFillFrame(first, second, fill int) Frame {
	return Frame{
		First:   first,
		Second:  second,
		Fill:    fill,
		HasFill: true,
	}
}

func (that Frame) IsStrike() bool {
	return that.First == AllPins
}

func (that Frame) IsSpare() bool {
	return !that.IsStrike() && that.First+that.Second == AllPins
}

// Rolls returns the frame's rolls in delivery order.
func (that Frame) Rolls() []int {
	if that.HasFill {
		return []int{that.First, that.Second, that.Fill}
	}
	return []int{that.First, that.Second}
}

// String renders the frame in the comma separated text form, e.g. "2,8,6".
func (that Frame) String() string {
	rolls := that.Rolls()

	tokens := make([]string, 0, len(rolls))
	for _, roll := range rolls {
		tokens = append(tokens, strconv.Itoa(roll))
	}

	return strings.Join(tokens, RollSeparator)
}

// FormatFrames renders frames in the space separated text form of a game.
func FormatFrames(frames []Frame) string {
	parts := make([]string, 0, len(frames))
	for _, frame := range frames {
		parts = append(parts, frame.String())
	}

	return strings.Join(parts, FrameSeparator)
}
