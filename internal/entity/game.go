package entity

import "github.com/rocketscienceinc/bowling-backend/internal/apperror"

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

type Game struct {
	ID       string  `json:"id"`
	BowlerID string  `json:"bowler_id,omitempty"`
	Frames   []Frame `json:"frames"`
	Status   string  `json:"status"`
}

func NewGame(id, bowlerID string) *Game {
	return &Game{
		ID:       id,
		BowlerID: bowlerID,
		Frames:   []Frame{},
		Status:   StatusOngoing,
	}
}

// AddFrame appends a frame. The game is marked finished once it holds
// MaxFrames frames; frame legality is not checked.
func (that *Game) AddFrame(frame Frame) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.Frames = append(that.Frames, frame)
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if len(that.Frames) >= MaxFrames {
		that.Status = StatusFinished
		return
	}

	that.Status = StatusOngoing
}

func (that *Game) FrameCount() int {
	return len(that.Frames)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
