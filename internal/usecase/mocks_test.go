package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/bowling-backend/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// UpdateFrames runs update on the game the expectation returns, the way the
// Redis repository does inside its transaction.
func (that *mockGameRepo) UpdateFrames(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error) {
	args := that.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	game, _ := args.Get(0).(*entity.Game)
	if err := update(game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockBowlerRepo struct {
	mock.Mock
}

func (that *mockBowlerRepo) CreateOrUpdate(ctx context.Context, bowler *entity.Bowler) error {
	args := that.Called(ctx, bowler)
	return args.Error(0)
}

func (that *mockBowlerRepo) GetByID(ctx context.Context, id string) (*entity.Bowler, error) {
	args := that.Called(ctx, id)
	bowler, _ := args.Get(0).(*entity.Bowler)
	return bowler, args.Error(1)
}

func (that *mockBowlerRepo) AddGame(ctx context.Context, bowlerID, gameID string) error {
	args := that.Called(ctx, bowlerID, gameID)
	return args.Error(0)
}

func (that *mockBowlerRepo) GameIDs(ctx context.Context, bowlerID string) ([]string, error) {
	args := that.Called(ctx, bowlerID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
