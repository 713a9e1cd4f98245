// Package bowling scores ten-pin bowling games, complete or in progress.
package bowling

import (
	"fmt"

	"github.com/rocketscienceinc/bowling-backend/internal/entity"
)

// bonus tells a frame which of its rolls are still owed to earlier frames.
type bonus struct {
	prevSpare    bool
	prevStrike   bool
	doubleStrike bool
}

// TotalScore returns the score of the given frames, bonuses included.
// Bonuses are paid forward: each frame credits its own rolls to the
// strikes and spares before it, so a prefix of a game scores what has
// been earned so far.
func TotalScore(frames []entity.Frame) int {
	var (
		score int
		ctx   bonus
	)

	for _, frame := range frames {
		score += frameScore(frame, ctx)

		ctx = bonus{
			prevSpare:    frame.IsSpare(),
			prevStrike:   frame.IsStrike(),
			doubleStrike: frame.IsStrike() && ctx.prevStrike,
		}
	}

	return score
}

func frameScore(frame entity.Frame, ctx bonus) int {
	score := frame.First + frame.Second

	if ctx.prevSpare {
		score += frame.First
	}

	if ctx.prevStrike {
		score += frame.First + frame.Second
	}

	// the strike two frames back still needs this frame's first roll
	if ctx.doubleStrike {
		score += frame.First
	}

	if frame.HasFill && (frame.IsStrike() || frame.IsSpare()) {
		score += frame.Fill
	}

	return score
}

// TotalScoreFromText parses a game in text form and scores it.
func TotalScoreFromText(text string) (int, error) {
	frames, err := ParseFrames(text)
	if err != nil {
		return 0, fmt.Errorf("failed to parse frames: %w", err)
	}

	return TotalScore(frames), nil
}
