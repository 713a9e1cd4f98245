package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/bowling-backend/internal/entity"
)

var ErrBowlerNotFound = errors.New("bowler not found")

type BowlerRepository interface {
	CreateOrUpdate(ctx context.Context, bowler *entity.Bowler) error
	GetByID(ctx context.Context, id string) (*entity.Bowler, error)

	AddGame(ctx context.Context, bowlerID, gameID string) error
	GameIDs(ctx context.Context, bowlerID string) ([]string, error)
}

type dbBowler struct {
	client *redis.Client
}

func NewBowlerRepository(client *redis.Client) BowlerRepository {
	return &dbBowler{
		client: client,
	}
}

func bowlerKey(id string) string {
	return "bowler:" + id
}

// the bowler's games, oldest first
func bowlerGamesKey(id string) string {
	return "bowler:" + id + ":games"
}

func (that *dbBowler) CreateOrUpdate(ctx context.Context, bowler *entity.Bowler) error {
	bowlerJSON, err := json.Marshal(bowler)
	if err != nil {
		return fmt.Errorf("failed to marshal bowler: %w", err)
	}

	if err = that.client.Set(ctx, bowlerKey(bowler.ID), bowlerJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set bowler: %w", err)
	}

	return nil
}

func (that *dbBowler) GetByID(ctx context.Context, id string) (*entity.Bowler, error) {
	response, err := that.client.Get(ctx, bowlerKey(id)).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, ErrBowlerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get bowler by ID: %w", err)
	}

	var bowler entity.Bowler
	if err = json.Unmarshal(response, &bowler); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bowler: %w", err)
	}

	return &bowler, nil
}

func (that *dbBowler) AddGame(ctx context.Context, bowlerID, gameID string) error {
	if err := that.client.RPush(ctx, bowlerGamesKey(bowlerID), gameID).Err(); err != nil {
		return fmt.Errorf("failed to add game to bowler: %w", err)
	}

	return nil
}

func (that *dbBowler) GameIDs(ctx context.Context, bowlerID string) ([]string, error) {
	ids, err := that.client.LRange(ctx, bowlerGamesKey(bowlerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bowler games: %w", err)
	}

	return ids, nil
}
