package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

// maxSyntheticCount bounds the count query parameter.
const maxSyntheticCount = 500

// RankedEntry is a leaderboard entry with its 1-based position.
type RankedEntry struct {
	Rank int `json:"rank"`
	fantasy.Entry
}

// LeaderboardResponse is a ranked division leaderboard.
type LeaderboardResponse struct {
	Division fantasy.Division `json:"division"`
	Seed     string           `json:"seed"`
	Entries  []RankedEntry    `json:"entries"`
}

// EntryResponse is one leaderboard entry with its roster expanded.
type EntryResponse struct {
	Division fantasy.Division       `json:"division"`
	Rank     int                    `json:"rank"`
	Entry    fantasy.Entry          `json:"entry"`
	Players  []fantasy.PlayerPoints `json:"players"`
}

// leaderboardQuery is the parsed form of the leaderboard query string.
type leaderboardQuery struct {
	opts fantasy.LeaderboardOptions
	key  string
}

func (h *Handler) parseLeaderboardQuery(r *http.Request) (leaderboardQuery, *apiError) {
	div, err := fantasy.ParseDivision(chi.URLParam(r, "division"))
	if err != nil {
		return leaderboardQuery{}, badRequest(err.Error())
	}
	q := r.URL.Query()
	syn := h.cfg.Synthetic

	seed := strings.TrimSpace(q.Get("seed"))
	if seed == "" {
		seed = syn.SeedFor(div)
	}
	count, apiErr := intParam(q, "count", syn.Count, 0, maxSyntheticCount)
	if apiErr != nil {
		return leaderboardQuery{}, apiErr
	}
	minSize, apiErr := intParam(q, "minSize", syn.MinSize, 0, 64)
	if apiErr != nil {
		return leaderboardQuery{}, apiErr
	}
	maxSize, apiErr := intParam(q, "maxSize", syn.MaxSize, 0, 64)
	if apiErr != nil {
		return leaderboardQuery{}, apiErr
	}

	gen := fantasy.GenerateOptions{Seed: seed, Count: count, MinSize: minSize, MaxSize: maxSize}
	if user := strings.TrimSpace(q.Get("user")); user != "" {
		gen.IncludeReal = &fantasy.RealEntrant{
			Username:    user,
			DisplayName: strings.TrimSpace(q.Get("displayName")),
		}
	}

	lq := leaderboardQuery{
		opts: fantasy.LeaderboardOptions{Division: div, Generate: gen, MinReal: syn.MinReal},
	}
	lq.key = fmt.Sprintf("leaderboard:%s:%d:%d:%d:%s", div, count, minSize, maxSize, url.QueryEscape(seed))
	if gen.IncludeReal != nil {
		lq.key += ":" + url.QueryEscape(gen.IncludeReal.Username) + ":" + url.QueryEscape(gen.IncludeReal.DisplayName)
	}
	return lq, nil
}

func (h *Handler) buildLeaderboard(r *http.Request, lq leaderboardQuery) (*tournament.Leaderboard, *apiError) {
	lb, err := tournament.BuildLeaderboard(r.Context(), h.src, h.cfg.Scoring, lq.opts)
	if err != nil {
		return nil, h.internal("build leaderboard", err)
	}
	h.metrics.ObserveLeaderboard(lq.opts.Division, lb.Entries)
	h.logger.Debug("Leaderboard built",
		"division", lq.opts.Division,
		"seed", lq.opts.Generate.Seed,
		"entries", len(lb.Entries))
	return lb, nil
}

// GetLeaderboard returns the ranked leaderboard for a division.
// @Summary Get division leaderboard
// @Description Scores real entries and, while there are too few, fills with deterministic synthetic entries. Identical parameters always produce the identical leaderboard.
// @Tags leaderboard
// @Produce json
// @Param division path string true "Division" Enums(boys, girls)
// @Param seed query string false "Generator seed (defaults to the configured seed for the division)"
// @Param count query int false "Synthetic entry count"
// @Param minSize query int false "Minimum synthetic roster size"
// @Param maxSize query int false "Maximum synthetic roster size"
// @Param user query string false "Include a real entrant drawn from the same stream"
// @Param displayName query string false "Display name for the included entrant"
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /leaderboard/{division} [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	lq, apiErr := h.parseLeaderboardQuery(r)
	if apiErr != nil {
		apiErr.write(w)
		return
	}
	h.serveCached(w, r, lq.key, cache.TTLLeaderboard, func() (interface{}, *apiError) {
		lb, apiErr := h.buildLeaderboard(r, lq)
		if apiErr != nil {
			return nil, apiErr
		}
		resp := LeaderboardResponse{
			Division: lb.Division,
			Seed:     lb.Seed,
			Entries:  make([]RankedEntry, len(lb.Entries)),
		}
		for i, e := range lb.Entries {
			resp.Entries[i] = RankedEntry{Rank: i + 1, Entry: e}
		}
		return resp, nil
	})
}

// GetLeaderboardEntry returns one entry from a leaderboard with its roster
// expanded. The leaderboard is rebuilt from the same parameters, so a
// synthetic entry ID resolves to the same roster it was listed with.
// @Summary Get leaderboard entry
// @Description Returns one entry's rank, total and per-player points. Accepts the same query parameters as the leaderboard.
// @Tags leaderboard
// @Produce json
// @Param division path string true "Division" Enums(boys, girls)
// @Param entryID path string true "Entry ID (username or synthetic-N)"
// @Param seed query string false "Generator seed"
// @Param count query int false "Synthetic entry count"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /leaderboard/{division}/entries/{entryID} [get]
func (h *Handler) GetLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	lq, apiErr := h.parseLeaderboardQuery(r)
	if apiErr != nil {
		apiErr.write(w)
		return
	}
	entryID := chi.URLParam(r, "entryID")
	key := lq.key + ":entry:" + url.QueryEscape(entryID)

	h.serveCached(w, r, key, cache.TTLLeaderboard, func() (interface{}, *apiError) {
		lb, apiErr := h.buildLeaderboard(r, lq)
		if apiErr != nil {
			return nil, apiErr
		}
		entry, rank, ok := fantasy.FindEntry(lb.Entries, entryID)
		if !ok {
			return nil, notFound(fmt.Sprintf("Entry %s not found", entryID))
		}
		return EntryResponse{
			Division: lb.Division,
			Rank:     rank,
			Entry:    entry,
			Players:  fantasy.RosterWithPoints(entry.Roster, lb.Directory, h.cfg.Scoring),
		}, nil
	})
}

func intParam(q url.Values, name string, fallback, lo, hi int) (int, *apiError) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, badRequest(fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi))
	}
	return n, nil
}
