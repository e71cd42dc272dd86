package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/flagfantasy/internal/config"
)

// Views lists every materialized view, in refresh order.
var Views = []string{
	config.SeasonStatsView,
}

// RefreshMaterializedViews refreshes all materialized views after ingestion.
// Uses CONCURRENTLY so reads are not blocked during refresh.
// Call this after a successful seed or stat sheet import.
func RefreshMaterializedViews(ctx context.Context, db DB, logger *slog.Logger) error {
	for _, v := range Views {
		start := time.Now()
		_, err := db.Exec(ctx, fmt.Sprintf("REFRESH MATERIALIZED VIEW CONCURRENTLY %s", v))
		dur := time.Since(start).Round(time.Millisecond)

		if err != nil {
			logger.Warn("Failed to refresh materialized view",
				"view", v, "duration", dur, "error", err)
			return fmt.Errorf("refresh %s: %w", v, err)
		}
		logger.Info("Refreshed materialized view", "view", v, "duration", dur)
	}
	return nil
}
