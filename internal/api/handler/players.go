package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

// PlayerResponse is a player with their computed points for one scope.
type PlayerResponse struct {
	fantasy.Player
	Points float64 `json:"points"`
}

// ScoringResponse is the active scoring configuration.
type ScoringResponse struct {
	Weights      fantasy.ScoringTable `json:"weights"`
	RosterLimits fantasy.RosterLimits `json:"rosterLimits"`
}

// GetScoring returns the scoring table and roster caps.
// @Summary Get scoring table
// @Description Returns the per-counter point weights and per-division roster caps.
// @Tags scoring
// @Produce json
// @Success 200 {object} ScoringResponse
// @Router /scoring [get]
func (h *Handler) GetScoring(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "scoring", cache.TTLScoring, func() (interface{}, *apiError) {
		return ScoringResponse{Weights: h.cfg.Scoring, RosterLimits: h.cfg.RosterLimits}, nil
	})
}

// ListPlayers returns players with their season points in directory order.
// @Summary List players
// @Description Returns every player (optionally one division) with season stat line and points, in directory order.
// @Tags players
// @Produce json
// @Param division query string false "Division" Enums(boys, girls)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	var div fantasy.Division
	if raw := r.URL.Query().Get("division"); raw != "" {
		d, err := fantasy.ParseDivision(raw)
		if err != nil {
			badRequest(err.Error()).write(w)
			return
		}
		div = d
	}

	key := "players:" + string(div)
	h.serveCached(w, r, key, cache.TTLDirectory, func() (interface{}, *apiError) {
		dir, err := h.src.LoadDirectory(r.Context())
		if err != nil {
			return nil, h.internal("load players", err)
		}
		players := dir.Players()
		if div != "" {
			players = dir.ByDivision(div)
		}
		out := make([]PlayerResponse, 0, len(players))
		for _, p := range players {
			out = append(out, PlayerResponse{Player: p, Points: fantasy.ComputePoints(p.Stats, h.cfg.Scoring)})
		}
		return map[string]interface{}{"players": out}, nil
	})
}

// GetPlayer returns one player's season line and points.
// @Summary Get player
// @Description Returns a player's season stat line and points.
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} PlayerResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "playerID"))
	h.serveCached(w, r, "player:"+id, cache.TTLDirectory, func() (interface{}, *apiError) {
		dir, err := h.src.LoadDirectory(r.Context())
		if err != nil {
			return nil, h.internal("load players", err)
		}
		p, ok := dir.Lookup(id)
		if !ok {
			return nil, notFound(fmt.Sprintf("Player %s not found", id))
		}
		return PlayerResponse{Player: p, Points: fantasy.ComputePoints(p.Stats, h.cfg.Scoring)}, nil
	})
}

// GetGamePoints returns per-player points for one game.
// @Summary Get game points
// @Description Returns each player's stat line and points for a single game, in directory order.
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{gameID}/points [get]
func (h *Handler) GetGamePoints(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimSpace(chi.URLParam(r, "gameID"))
	h.serveCached(w, r, "game:"+gameID, cache.TTLGame, func() (interface{}, *apiError) {
		dir, err := h.src.LoadGameLines(r.Context(), gameID)
		if errors.Is(err, tournament.ErrGameNotFound) {
			return nil, notFound(fmt.Sprintf("Game %s not found", gameID))
		}
		if err != nil {
			return nil, h.internal("load game", err)
		}
		players := dir.Players()
		out := make([]PlayerResponse, 0, len(players))
		total := 0.0
		for _, p := range players {
			pts := fantasy.ComputePoints(p.Stats, h.cfg.Scoring)
			total += pts
			out = append(out, PlayerResponse{Player: p, Points: pts})
		}
		return map[string]interface{}{
			"gameId":      gameID,
			"players":     out,
			"totalPoints": total,
		}, nil
	})
}
