package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bowling-backend/internal/apperror"
	"github.com/rocketscienceinc/bowling-backend/internal/entity"
	"github.com/rocketscienceinc/bowling-backend/testing/suite"
)

func TestGameRepository(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, 0)

	t.Run("CreateOrUpdate", func(t *testing.T) {
		// Given: a game with two frames
		game := entity.NewGame("create", "bowler")
		require.NoError(t, game.AddFrame(entity.NewFrame(1, 4)))
		require.NoError(t, game.AddFrame(entity.NewFrame(10, 0)))

		// When: CreateOrUpdate is called
		err := gameRepo.CreateOrUpdate(ctx, game)

		// Then: no error should be returned, and game is stored
		require.NoError(t, err)
	})

	t.Run("GetByID_Success", func(t *testing.T) {
		// Given: a stored game whose last frame has a zero fill roll
		game := entity.NewGame("get", "bowler")
		require.NoError(t, game.AddFrame(entity.NewFrame(10, 0)))
		require.NoError(t, game.AddFrame(entity.NewFillFrame(1, 1, 0)))

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game, retrievedGame)
		assert.True(t, retrievedGame.Frames[1].HasFill)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		// When: GetByID is called with non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Empty(t, retrievedGame.ID)
	})

	t.Run("UpdateFrames_Success", func(t *testing.T) {
		// Given: a stored game with one frame
		game := entity.NewGame("update", "")
		require.NoError(t, game.AddFrame(entity.NewFrame(10, 0)))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: a frame is appended through UpdateFrames
		updated, err := gameRepo.UpdateFrames(ctx, game.ID, func(game *entity.Game) error {
			return game.AddFrame(entity.NewFrame(3, 4))
		})

		// Then: both the returned and the stored game hold the new frame
		require.NoError(t, err)
		assert.Equal(t, 2, updated.FrameCount())

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("UpdateFrames_NotFound", func(t *testing.T) {
		called := false

		updated, err := gameRepo.UpdateFrames(ctx, "9999999", func(*entity.Game) error {
			called = true
			return nil
		})

		require.ErrorIs(t, err, ErrGameNotFound)
		assert.Nil(t, updated)
		assert.False(t, called)
	})

	t.Run("UpdateFrames_UpdateError", func(t *testing.T) {
		// Given: a finished game
		game := entity.NewGame("finished", "")
		game.Status = entity.StatusFinished
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the update refuses the frame
		updated, err := gameRepo.UpdateFrames(ctx, game.ID, func(game *entity.Game) error {
			return game.AddFrame(entity.NewFrame(1, 1))
		})

		// Then: the error is returned and nothing is written
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Nil(t, updated)

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Frames)
	})

	t.Run("UpdateFrames_Concurrent", func(t *testing.T) {
		// Given: an empty stored game
		game := entity.NewGame("concurrent", "")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		const appends = 5

		// When: several frames are appended at the same time
		var wg sync.WaitGroup
		errs := make([]error, appends)
		for i := range appends {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, errs[i] = gameRepo.UpdateFrames(ctx, game.ID, func(game *entity.Game) error {
					// widen the window between read and write
					time.Sleep(time.Millisecond)
					return game.AddFrame(entity.NewFrame(1, 1))
				})
			}()
		}
		wg.Wait()

		// Then: no frame is lost
		for _, err := range errs {
			require.NoError(t, err)
		}

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, appends, stored.FrameCount())
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		// Given: a stored game
		game := entity.NewGame("delete", "")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, game.ID)

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		// When: DeleteByID is called with non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Games expire after the TTL", func(t *testing.T) {
		// Given: a repository with a TTL
		expiringRepo := NewGameRepository(st.Storage, time.Minute)
		game := entity.NewGame("expiring", "")

		// When: a game is stored
		require.NoError(t, expiringRepo.CreateOrUpdate(ctx, game))

		// Then: its key carries the TTL
		ttl, err := st.Storage.TTL(ctx, "game:expiring").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
