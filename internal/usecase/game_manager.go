package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/bowling-backend/internal/apperror"
	"github.com/rocketscienceinc/bowling-backend/internal/bowling"
	"github.com/rocketscienceinc/bowling-backend/internal/entity"
	"github.com/rocketscienceinc/bowling-backend/internal/pkg"
	"github.com/rocketscienceinc/bowling-backend/internal/repository"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateFrames(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type bowlerRepo interface {
	CreateOrUpdate(ctx context.Context, bowler *entity.Bowler) error
	GetByID(ctx context.Context, id string) (*entity.Bowler, error)
	AddGame(ctx context.Context, bowlerID, gameID string) error
	GameIDs(ctx context.Context, bowlerID string) ([]string, error)
}

// GameScore is a game together with its score so far.
type GameScore struct {
	Game  *entity.Game `json:"game"`
	Score int          `json:"score"`
}

type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	bowlerRepo bowlerRepo
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bowlerRepo bowlerRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		bowlerRepo: bowlerRepo,
	}
}

func (that *GameManager) CreateBowler(ctx context.Context, name string) (*entity.Bowler, error) {
	bowler := &entity.Bowler{
		ID:   pkg.GenerateBowlerID(),
		Name: name,
	}

	if err := that.bowlerRepo.CreateOrUpdate(ctx, bowler); err != nil {
		return nil, fmt.Errorf("failed to create bowler: %w", err)
	}

	return bowler, nil
}

// CreateGame starts an empty game. A non-empty bowlerID must name an existing
// bowler; the game is then added to that bowler's history.
func (that *GameManager) CreateGame(ctx context.Context, bowlerID string) (*entity.Game, error) {
	if bowlerID != "" {
		if _, err := that.bowlerRepo.GetByID(ctx, bowlerID); err != nil {
			return nil, fmt.Errorf("failed get bowler by id: %w", err)
		}
	}

	game := entity.NewGame(pkg.GenerateGameID(), bowlerID)
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if bowlerID != "" {
		if err := that.bowlerRepo.AddGame(ctx, bowlerID, game.ID); err != nil {
			that.discardGame(ctx, game.ID)

			return nil, fmt.Errorf("failed to attach game to bowler: %w", err)
		}
	}

	that.logger.Debug("game created", "game_id", game.ID, "bowler_id", bowlerID)

	return game, nil
}

// discardGame removes a game that could not be added to its bowler's history.
func (that *GameManager) discardGame(ctx context.Context, id string) {
	log := that.logger.With("method", "discardGame")

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete game", "game_id", id, "error", err)
	}
}

// AddFrame parses one frame in text form, e.g. "2,8,6", and appends it to the game.
func (that *GameManager) AddFrame(ctx context.Context, gameID, frameText string) (*entity.Game, error) {
	frame, err := bowling.ParseFrame(frameText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidFrame, err)
	}

	game, err := that.gameRepo.UpdateFrames(ctx, gameID, func(game *entity.Game) error {
		return game.AddFrame(frame)
	})
	if err != nil {
		return nil, fmt.Errorf("failed add frame: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

// Score returns the score of the frames played so far.
func (that *GameManager) Score(ctx context.Context, id string) (*GameScore, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GameScore{
		Game:  game,
		Score: bowling.TotalScore(game.Frames),
	}, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// BowlerGames scores every game of a bowler, oldest first. Games that have
// expired or were deleted are left out.
func (that *GameManager) BowlerGames(ctx context.Context, bowlerID string) ([]GameScore, error) {
	log := that.logger.With("method", "BowlerGames", "bowler_id", bowlerID)

	if _, err := that.bowlerRepo.GetByID(ctx, bowlerID); err != nil {
		return nil, fmt.Errorf("failed get bowler by id: %w", err)
	}

	ids, err := that.bowlerRepo.GameIDs(ctx, bowlerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]GameScore, 0, len(ids))
	for _, id := range ids {
		scored, err := that.Score(ctx, id)
		if errors.Is(err, repository.ErrGameNotFound) {
			log.Debug("skipping missing game", "game_id", id)
			continue
		}

		if err != nil {
			return nil, err
		}

		games = append(games, *scored)
	}

	return games, nil
}
