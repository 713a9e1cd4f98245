package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrame_IsStrike(t *testing.T) {
	t.Run("Ten pins on the first roll", func(t *testing.T) {
		frame := NewFrame(10, 0)

		assert.True(t, frame.IsStrike())
		assert.False(t, frame.IsSpare())
	})

	t.Run("Ten pins on the second roll is a spare", func(t *testing.T) {
		frame := NewFrame(0, 10)

		assert.False(t, frame.IsStrike())
		assert.True(t, frame.IsSpare())
	})

	t.Run("Open frame", func(t *testing.T) {
		frame := NewFrame(4, 5)

		assert.False(t, frame.IsStrike())
		assert.False(t, frame.IsSpare())
	})
}

func TestFrame_Rolls(t *testing.T) {
	assert.Equal(t, []int{3, 4}, NewFrame(3, 4).Rolls())
	assert.Equal(t, []int{10, 10, 0}, NewFillFrame(10, 10, 0).Rolls())
}

func TestFormatFrames(t *testing.T) {
	// Given: a short game ending with a fill roll
	frames := []Frame{NewFrame(1, 4), NewFrame(10, 0), NewFillFrame(2, 8, 6)}

	// When: formatting the frames
	text := FormatFrames(frames)

	// Then: it uses the space and comma separated text form
	assert.Equal(t, "1,4 10,0 2,8,6", text)
	assert.Empty(t, FormatFrames(nil))
}
