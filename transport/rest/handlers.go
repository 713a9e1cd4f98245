package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/bowling-backend/internal/apperror"
	"github.com/rocketscienceinc/bowling-backend/internal/bowling"
	"github.com/rocketscienceinc/bowling-backend/internal/entity"
	"github.com/rocketscienceinc/bowling-backend/internal/repository"
	"github.com/rocketscienceinc/bowling-backend/internal/usecase"
)

const maxBodyBytes = 4 << 10

type gameUseCase interface {
	CreateBowler(ctx context.Context, name string) (*entity.Bowler, error)
	CreateGame(ctx context.Context, bowlerID string) (*entity.Game, error)
	AddFrame(ctx context.Context, gameID, frameText string) (*entity.Game, error)
	Score(ctx context.Context, id string) (*usecase.GameScore, error)
	DeleteGame(ctx context.Context, id string) error
	BowlerGames(ctx context.Context, bowlerID string) ([]usecase.GameScore, error)
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

type scoreResponse struct {
	Frames string `json:"frames"`
	Score  int    `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type createBowlerRequest struct {
	Name string `json:"name"`
}

type createGameRequest struct {
	BowlerID string `json:"bowler_id"`
}

// NewHandler returns the routes of the scoring API.
func NewHandler(logger *slog.Logger, games gameUseCase) http.Handler {
	that := &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("POST /score", that.score)
	mux.HandleFunc("POST /bowlers", that.createBowler)
	mux.HandleFunc("GET /bowlers/{id}/games", that.bowlerGames)
	mux.HandleFunc("POST /games", that.createGame)
	mux.HandleFunc("GET /games/{id}", that.getGame)
	mux.HandleFunc("POST /games/{id}/frames", that.addFrame)
	mux.HandleFunc("DELETE /games/{id}", that.deleteGame)

	return mux
}

// score rates a whole game sent as text, e.g. "1,4 4,5 10,0".
func (that *handlers) score(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		that.writeError(w, "score", err)
		return
	}

	frames, err := bowling.ParseFrames(text)
	if err != nil {
		that.writeError(w, "score", err)
		return
	}

	that.writeJSON(w, http.StatusOK, scoreResponse{
		Frames: entity.FormatFrames(frames),
		Score:  bowling.TotalScore(frames),
	})
}

func (that *handlers) createBowler(w http.ResponseWriter, r *http.Request) {
	var req createBowlerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	bowler, err := that.games.CreateBowler(r.Context(), req.Name)
	if err != nil {
		that.writeError(w, "createBowler", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, bowler)
}

func (that *handlers) bowlerGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.games.BowlerGames(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "bowlerGames", err)
		return
	}

	that.writeJSON(w, http.StatusOK, games)
}

// createGame accepts an optional JSON body naming the bowler.
func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.games.CreateGame(r.Context(), req.BowlerID)
	if err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, usecase.GameScore{Game: game})
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	scored, err := that.games.Score(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, scored)
}

// addFrame appends one frame sent as text, e.g. "2,8,6".
func (that *handlers) addFrame(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil {
		that.writeError(w, "addFrame", err)
		return
	}

	game, err := that.games.AddFrame(r.Context(), r.PathValue("id"), text)
	if err != nil {
		that.writeError(w, "addFrame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, usecase.GameScore{
		Game:  game,
		Score: bowling.TotalScore(game.Frames),
	})
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readText(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", errors.Join(apperror.ErrInvalidGame, err)
	}

	return strings.TrimSpace(string(body)), nil
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	var parseErr *bowling.ParseError

	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, apperror.ErrInvalidFrame),
		errors.Is(err, apperror.ErrInvalidGame):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, repository.ErrBowlerNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, repository.ErrUpdateConflict):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
