package bowling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/bowling-backend/internal/entity"
)

const maxRollsPerFrame = 3

var (
	ErrEmptyGame    = errors.New("empty game")
	ErrEmptyFrame   = errors.New("empty frame")
	ErrInvalidRoll  = errors.New("invalid roll")
	ErrTooManyRolls = errors.New("too many rolls in frame")
)

// ParseError reports where the text form of a game could not be read.
type ParseError struct {
	Frame int
	Token string
	Err   error
}

func (that *ParseError) Error() string {
	if errors.Is(that.Err, ErrEmptyGame) {
		return that.Err.Error()
	}

	if that.Token == "" {
		return fmt.Sprintf("frame %d: %v", that.Frame+1, that.Err)
	}
	return fmt.Sprintf("frame %d: %v %q", that.Frame+1, that.Err, that.Token)
}

func (that *ParseError) Unwrap() error {
	return that.Err
}

// ParseFrames splits a game such as "1,4 4,5 2,8,6" into frames.
// An empty roll token counts as 0 pins and a lone token is followed by a 0.
func ParseFrames(text string) ([]entity.Frame, error) {
	if text == "" {
		return nil, &ParseError{Err: ErrEmptyGame}
	}

	parts := strings.Split(text, entity.FrameSeparator)

	frames := make([]entity.Frame, 0, len(parts))
	for i, part := range parts {
		frame, err := parseFrame(i, part)
		if err != nil {
			return nil, err
		}

		frames = append(frames, frame)
	}

	return frames, nil
}

// ParseFrame reads a single frame such as "2,8,6". Unlike a frame inside a
// game, an empty frame is rejected.
func ParseFrame(text string) (entity.Frame, error) {
	if text == "" {
		return entity.Frame{}, &ParseError{Err: ErrEmptyFrame}
	}

	return parseFrame(0, text)
}

func parseFrame(index int, text string) (entity.Frame, error) {
	tokens := strings.Split(text, entity.RollSeparator)
	if len(tokens) > maxRollsPerFrame {
		return entity.Frame{}, &ParseError{Frame: index, Token: text, Err: ErrTooManyRolls}
	}

	rolls := make([]int, 0, maxRollsPerFrame)
	for _, token := range tokens {
		roll, err := parseRoll(token)
		if err != nil {
			return entity.Frame{}, &ParseError{Frame: index, Token: token, Err: err}
		}

		rolls = append(rolls, roll)
	}

	switch len(rolls) {
	case 1:
		return entity.NewFrame(rolls[0], 0), nil
	case 2:
		return entity.NewFrame(rolls[0], rolls[1]), nil
	default:
		return entity.NewFillFrame(rolls[0], rolls[1], rolls[2]), nil
	}
}

func parseRoll(token string) (int, error) {
	if token == "" {
		return 0, nil
	}

	roll, err := strconv.Atoi(token)
	if err != nil || roll < 0 {
		return 0, ErrInvalidRoll
	}

	return roll, nil
}
