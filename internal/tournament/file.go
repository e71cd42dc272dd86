package tournament

import (
	"context"
	"fmt"

	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/provider"
)

// FileSource serves a decoded tournament export from memory.
type FileSource struct {
	t        *provider.Tournament
	Warnings []string
}

// OpenFile decodes the export at path.
func OpenFile(path string, limits fantasy.RosterLimits) (*FileSource, error) {
	t, warnings, err := provider.LoadTournamentFile(path, limits)
	if err != nil {
		return nil, err
	}
	return &FileSource{t: t, Warnings: warnings}, nil
}

// NewFileSource wraps an already decoded tournament.
func NewFileSource(t *provider.Tournament) *FileSource {
	return &FileSource{t: t}
}

func (f *FileSource) HealthCheck(context.Context) error { return nil }

func (f *FileSource) LoadTeams(context.Context) ([]fantasy.Team, error) {
	dir := f.t.Directory()
	teams := make([]fantasy.Team, len(f.t.Teams))
	for i, team := range f.t.Teams {
		team.Players = make([]fantasy.Player, 0, len(team.Players))
		for _, p := range f.t.Teams[i].Players {
			if season, ok := dir.Lookup(p.ID); ok {
				p = season
			}
			team.Players = append(team.Players, p)
		}
		teams[i] = team
	}
	return teams, nil
}

func (f *FileSource) LoadDirectory(context.Context) (*fantasy.Directory, error) {
	return f.t.Directory(), nil
}

func (f *FileSource) LoadGameLines(_ context.Context, gameID string) (*fantasy.Directory, error) {
	dir, ok := f.t.GameDirectory(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return dir, nil
}

func (f *FileSource) LoadEntries(_ context.Context, div fantasy.Division) ([]fantasy.RosterSpec, error) {
	return f.t.RosterSpecs(div), nil
}
