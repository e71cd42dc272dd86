package provider

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// ExtractValue normalizes a stat value from the formats score sheets and
// tournament exports use.
//
// Exports carry flat numbers, numeric strings ("3"), or nested objects
// like {"total": 3, "firstHalf": 1}. This handles all of them, extracting
// the aggregate.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]interface{}:
		// Nested objects: try "total", "all", "count"
		for _, key := range []string{"total", "all", "count"} {
			if inner, exists := v[key]; exists && inner != nil {
				return ExtractValue(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

var ErrInvalidCount = errors.New("invalid stat count")

// ExtractCount extracts a non-negative whole count. Blank values read as
// zero.
func ExtractCount(val interface{}) (int, error) {
	if s, ok := val.(string); ok && strings.TrimSpace(s) == "" {
		return 0, nil
	}
	if val == nil {
		return 0, nil
	}
	f, ok := ExtractValue(val)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCount, val)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCount, val)
	}
	return int(f), nil
}

// ParseStatLine converts a loosely typed stat object into a StatLine.
// Field names may be counter names or stat-field aliases; unrecognized
// names are skipped and returned sorted so callers can report them.
// Aliases of the same counter are summed.
func ParseStatLine(raw map[string]interface{}) (fantasy.StatLine, []string, error) {
	line := make(fantasy.StatLine, len(raw))
	var unknown []string
	for _, name := range sortedKeys(raw) {
		val := raw[name]
		c, err := fantasy.ParseCounter(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		n, err := ExtractCount(val)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		line[c] += n
	}
	sort.Strings(unknown)
	return line, unknown, nil
}
