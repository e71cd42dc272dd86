package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/flagfantasy/internal/api/handler"
	"github.com/albapepper/flagfantasy/internal/api/respond"
	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/metrics"
	"github.com/albapepper/flagfantasy/internal/provider"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

func testTournament() *provider.Tournament {
	return &provider.Tournament{
		Teams: []fantasy.Team{
			{ID: "t1", Name: "Comets", Division: fantasy.DivisionBoys, Players: []fantasy.Player{
				{ID: "b1", Name: "Ari", Division: fantasy.DivisionBoys, TeamID: "t1",
					Stats: fantasy.StatLine{fantasy.Touchdown: 1, fantasy.Catch: 2}},
				{ID: "b2", Name: "Ben", Division: fantasy.DivisionBoys, TeamID: "t1",
					Stats: fantasy.StatLine{fantasy.Sack: 1}},
				{ID: "b3", Name: "Cal", Division: fantasy.DivisionBoys, TeamID: "t1",
					Stats: fantasy.StatLine{fantasy.Catch: 1}},
			}},
			{ID: "t2", Name: "Lynx", Division: fantasy.DivisionGirls, Players: []fantasy.Player{
				{ID: "g1", Name: "Dee", Division: fantasy.DivisionGirls, TeamID: "t2",
					Stats: fantasy.StatLine{fantasy.FlagGrab: 3}},
				{ID: "g2", Name: "Eve", Division: fantasy.DivisionGirls, TeamID: "t2",
					Stats: fantasy.StatLine{fantasy.Interception: 1}},
			}},
		},
		Games: []provider.Game{
			{ID: "game-1", Day: 1, Lines: []provider.GameLine{
				{PlayerID: "b1", Stats: fantasy.StatLine{fantasy.Touchdown: 1, fantasy.Catch: 2}},
			}},
		},
		Entries: []provider.Entry{
			{Username: "pat", DisplayName: "Pat", Rosters: map[fantasy.Division][]string{
				fantasy.DivisionBoys: {"b1", "b2"},
			}},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins: []string{"http://localhost:3000"},
		CacheEnabled:     true,
		Scoring:          fantasy.DefaultScoringTable(),
		RosterLimits:     fantasy.RosterLimits{fantasy.DivisionBoys: 2, fantasy.DivisionGirls: 2},
		Synthetic: config.SyntheticConfig{
			Seed: "test", Count: 4, MinSize: 1, MaxSize: 2, MinReal: 5,
		},
	}
}

type testServer struct {
	srv     *Server
	cache   *cache.Cache
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, src tournament.Source) *testServer {
	t.Helper()
	c := cache.New(true)
	t.Cleanup(c.Close)
	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{
		srv:     NewRouter(src, c, testConfig(), m, logger),
		cache:   c,
		metrics: m,
	}
}

func (ts *testServer) do(t *testing.T, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	ts.srv.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))

	rec = ts.do(t, http.MethodGet, "/health/db", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health/cache", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type brokenSource struct{ tournament.Source }

func (brokenSource) HealthCheck(context.Context) error { return errors.New("down") }

func (brokenSource) LoadDirectory(context.Context) (*fantasy.Directory, error) {
	return nil, errors.New("down")
}

func TestBrokenSource(t *testing.T) {
	ts := newTestServer(t, brokenSource{})

	rec := ts.do(t, http.MethodGet, "/health/db", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/players", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, respond.CodeInternal, decode[respond.ErrorResponse](t, rec).Error.Code)
}

func TestGetScoring(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/scoring", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.ScoringResponse](t, rec)
	assert.Equal(t, 6.0, body.Weights[fantasy.Touchdown])
	assert.Equal(t, -2.0, body.Weights[fantasy.PassingInterception])
	assert.Equal(t, 2, body.RosterLimits[fantasy.DivisionBoys])
}

func TestPlayers(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/players?division=Girls", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Players []handler.PlayerResponse `json:"players"`
	}](t, rec)
	require.Len(t, list.Players, 2)
	assert.Equal(t, "g1", list.Players[0].ID)
	assert.Equal(t, 3.0, list.Players[0].Points)

	rec = ts.do(t, http.MethodGet, "/api/v1/players", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/players?division=coed", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/players/b1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	player := decode[handler.PlayerResponse](t, rec)
	assert.Equal(t, "Ari", player.Name)
	assert.Equal(t, 8.0, player.Points)

	rec = ts.do(t, http.MethodGet, "/api/v1/players/zz", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGamePoints(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/games/game-1/points", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		GameID      string                   `json:"gameId"`
		Players     []handler.PlayerResponse `json:"players"`
		TotalPoints float64                  `json:"totalPoints"`
	}](t, rec)
	assert.Equal(t, "game-1", body.GameID)
	require.Len(t, body.Players, 1)
	assert.Equal(t, 8.0, body.TotalPoints)

	rec = ts.do(t, http.MethodGet, "/api/v1/games/game-9/points", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoreRoster(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	tests := []struct {
		name     string
		body     string
		status   int
		code     string
		total    float64
		players  int
		unknowns []string
	}{
		{
			name:     "valid roster",
			body:     `{"division": "boys", "playerIds": ["b1", "b2"]}`,
			status:   http.StatusOK,
			total:    10,
			players:  2,
			unknowns: []string{},
		},
		{
			name:     "unknown player contributes zero",
			body:     `{"division": "boys", "playerIds": ["b3", "nobody"]}`,
			status:   http.StatusOK,
			total:    1,
			players:  1,
			unknowns: []string{"nobody"},
		},
		{
			name:   "over the cap",
			body:   `{"division": "boys", "playerIds": ["b1", "b2", "b3"]}`,
			status: http.StatusUnprocessableEntity,
			code:   respond.CodeRosterFull,
		},
		{
			name:   "unknown division",
			body:   `{"division": "coed", "playerIds": []}`,
			status: http.StatusBadRequest,
			code:   respond.CodeBadRequest,
		},
		{
			name:   "duplicate pick",
			body:   `{"division": "boys", "playerIds": ["b1", "b1"]}`,
			status: http.StatusBadRequest,
			code:   respond.CodeBadRequest,
		},
		{
			name:   "player from the other division",
			body:   `{"division": "boys", "playerIds": ["g1"]}`,
			status: http.StatusBadRequest,
			code:   respond.CodeBadRequest,
		},
		{
			name:   "malformed body",
			body:   `{"division": `,
			status: http.StatusBadRequest,
			code:   respond.CodeBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/rosters/score", tt.body,
				http.Header{"Content-Type": {"application/json"}})
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decode[respond.ErrorResponse](t, rec).Error.Code)
				return
			}
			body := decode[handler.ScoreRosterResponse](t, rec)
			assert.Equal(t, tt.total, body.TotalPoints)
			assert.Len(t, body.Players, tt.players)
			assert.Equal(t, tt.unknowns, body.Unknown)
		})
	}
}

func TestLeaderboard(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	first := decode[handler.LeaderboardResponse](t, rec)

	assert.Equal(t, fantasy.DivisionBoys, first.Division)
	assert.Equal(t, "test:boys", first.Seed)
	require.Len(t, first.Entries, 5)
	for i, e := range first.Entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			assert.LessOrEqual(t, e.TotalPoints, first.Entries[i-1].TotalPoints)
		}
	}

	// Second request is served from cache and honours If-None-Match.
	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys", "", nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys", "", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, rec.Code)

	// A flush forces a rebuild that yields the identical body.
	ts.srv.Handler.FlushCache()
	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys", "", nil)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, first, decode[handler.LeaderboardResponse](t, rec))
	assert.Equal(t, etag, rec.Header().Get("ETag"))
}

func TestLeaderboard_Parameters(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys?seed=other&count=7&user=sam", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[handler.LeaderboardResponse](t, rec)
	assert.Equal(t, "other", body.Seed)
	assert.Len(t, body.Entries, 9)

	found := false
	for _, e := range body.Entries {
		if e.EntryID == "sam" {
			found = true
			assert.False(t, e.Synthetic)
			assert.Equal(t, "sam", e.DisplayName)
		}
	}
	assert.True(t, found)

	for _, bad := range []string{"count=-1", "count=x", "count=501", "minSize=100"} {
		rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys?"+bad, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/coed", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardEntry(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))

	rec := ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[handler.LeaderboardResponse](t, rec)

	var listed handler.RankedEntry
	for _, e := range board.Entries {
		if e.EntryID == "synthetic-1" {
			listed = e
		}
	}
	require.NotEmpty(t, listed.EntryID)

	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys/entries/synthetic-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[handler.EntryResponse](t, rec)
	assert.Equal(t, listed.Rank, detail.Rank)
	assert.Equal(t, listed.Roster, detail.Entry.Roster)
	assert.Len(t, detail.Players, len(listed.Roster))

	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys/entries/pat", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pat := decode[handler.EntryResponse](t, rec)
	assert.Equal(t, 10.0, pat.Entry.TotalPoints)
	assert.False(t, pat.Entry.Synthetic)

	rec = ts.do(t, http.MethodGet, "/api/v1/leaderboard/boys/entries/synthetic-99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, tournament.NewFileSource(testTournament()))
	ts.do(t, http.MethodGet, "/api/v1/leaderboard/girls", "", nil)

	rec := ts.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `flagfantasy_leaderboard_builds_total{division="girls"} 1`)
	assert.Contains(t, body, `flagfantasy_http_requests_total{method="GET",route="/api/v1/leaderboard/{division}",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	mw := RateLimitMiddleware(2, 60e9)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
