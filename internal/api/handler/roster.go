package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/albapepper/flagfantasy/internal/api/respond"
	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// ScoreRosterRequest is the body of POST /rosters/score.
type ScoreRosterRequest struct {
	Division  string   `json:"division"`
	PlayerIDs []string `json:"playerIds"`
}

// ScoreRosterResponse is a scored roster. Players lists only the IDs found
// in the directory; unknown IDs contribute nothing to the total.
type ScoreRosterResponse struct {
	Division    fantasy.Division       `json:"division"`
	TotalPoints float64                `json:"totalPoints"`
	Players     []fantasy.PlayerPoints `json:"players"`
	Unknown     []string               `json:"unknown"`
}

const maxRosterBody = 64 << 10

// ScoreRoster scores an ad-hoc roster against the season directory.
// @Summary Score a roster
// @Description Validates a division roster against the cap and returns its total and per-player points.
// @Tags rosters
// @Accept json
// @Produce json
// @Param roster body ScoreRosterRequest true "Roster"
// @Success 200 {object} ScoreRosterResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /rosters/score [post]
func (h *Handler) ScoreRoster(w http.ResponseWriter, r *http.Request) {
	var req ScoreRosterRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRosterBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest("Invalid request body: " + err.Error()).write(w)
		return
	}

	div, err := fantasy.ParseDivision(req.Division)
	if err != nil {
		badRequest(err.Error()).write(w)
		return
	}

	roster := fantasy.NewRoster(h.cfg.RosterLimits)
	for _, id := range req.PlayerIDs {
		if roster.Has(div, id) {
			badRequest(fmt.Sprintf("Player %s listed twice", id)).write(w)
			return
		}
		if _, err := roster.Toggle(div, id); err != nil {
			if errors.Is(err, fantasy.ErrDivisionFull) {
				respond.WriteError(w, http.StatusUnprocessableEntity, respond.CodeRosterFull, err.Error())
				return
			}
			badRequest(err.Error()).write(w)
			return
		}
	}

	dir, err := h.src.LoadDirectory(r.Context())
	if err != nil {
		h.internal("load players", err).write(w)
		return
	}

	ids := roster.IDs(div)
	for _, id := range ids {
		if p, ok := dir.Lookup(id); ok && p.Division != div {
			badRequest(fmt.Sprintf("Player %s plays in the %s division", id, p.Division)).write(w)
			return
		}
	}

	resp := ScoreRosterResponse{
		Division:    div,
		TotalPoints: fantasy.TotalPoints(ids, dir, h.cfg.Scoring),
		Players:     fantasy.RosterWithPoints(ids, dir, h.cfg.Scoring),
		Unknown:     []string{},
	}
	for _, id := range ids {
		if _, ok := dir.Lookup(id); !ok {
			resp.Unknown = append(resp.Unknown, id)
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, resp)
}
