// Package listener provides a Postgres LISTEN/NOTIFY consumer for tournament
// data changes. It holds a dedicated pgx connection (not from the pool)
// listening on the `tournament_updated` channel.
//
// The ingest CLI publishes an event after every seed run; API processes
// receive it here and drop their cached responses, so new stat lines show up
// without waiting for the season refresh ticker.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// Channel is the NOTIFY channel seed runs publish on.
	Channel          = "tournament_updated"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Event kinds.
const (
	KindTournament = "tournament"
	KindStatSheet  = "stat_sheet"
	KindRefresh    = "refresh"
)

// UpdateEvent is the JSON payload of pg_notify('tournament_updated', ...).
type UpdateEvent struct {
	Kind      string `json:"kind"`
	GameID    string `json:"game_id,omitempty"`
	Rows      int    `json:"rows"`
	Timestamp int64  `json:"ts"`
}

// Execer is the subset of pgx used to publish events.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Publish sends an update event on Channel.
func Publish(ctx context.Context, db Execer, event UpdateEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal update event: %w", err)
	}
	if _, err := db.Exec(ctx, "SELECT pg_notify($1, $2)", Channel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", Channel, err)
	}
	return nil
}

// Start opens a dedicated connection and listens on Channel, calling every
// hook once per received event. It reconnects automatically on connection
// loss. Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, hooks []func(UpdateEvent), logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, hooks, logger)
		if ctx.Err() != nil {
			logger.Info("Update listener stopped (context cancelled)")
			return
		}

		logger.Error("Update listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, hooks []func(UpdateEvent), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+Channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", Channel, err)
	}
	logger.Info("Update listener connected", "channel", Channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		dispatch(notification.Payload, hooks, logger)
	}
}

// dispatch decodes one payload and runs the hooks. Malformed payloads are
// logged and dropped.
func dispatch(payload string, hooks []func(UpdateEvent), logger *slog.Logger) bool {
	var event UpdateEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Failed to parse update event", "payload", payload, "error", err)
		return false
	}

	logger.Info("Update event received",
		"kind", event.Kind,
		"game_id", event.GameID,
		"rows", event.Rows)

	for _, hook := range hooks {
		hook(event)
	}
	return true
}
