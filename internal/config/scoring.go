package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// scoringFile is the on-disk shape of a scoring table:
//
//	weights:
//	  touchdown: 6
//	  passingInterception: -2
type scoringFile struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoadScoringTable reads a YAML scoring table. Keys may be counter names
// or their stat-field aliases; an unknown key is an error so that a typo
// cannot silently zero a category.
func LoadScoringTable(path string) (fantasy.ScoringTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring table: %w", err)
	}
	return ParseScoringTable(data)
}

// ParseScoringTable decodes YAML scoring table bytes.
func ParseScoringTable(data []byte) (fantasy.ScoringTable, error) {
	var f scoringFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring table: %w", err)
	}
	if len(f.Weights) == 0 {
		return nil, fmt.Errorf("scoring table has no weights")
	}

	table := make(fantasy.ScoringTable, len(f.Weights))
	for name, weight := range f.Weights {
		c, err := fantasy.ParseCounter(name)
		if err != nil {
			return nil, fmt.Errorf("scoring table: %w", err)
		}
		if _, dup := table[c]; dup {
			return nil, fmt.Errorf("scoring table: %s listed twice", c)
		}
		table[c] = weight
	}
	return table, nil
}
