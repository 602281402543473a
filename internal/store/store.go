// Package store persists chat messages. Every backend keeps an append-only
// log per room: appends land in caller order within a room, rooms never block
// each other, and the recent-history query returns the newest messages in
// ascending insertion order.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ionution132/chat-backend/internal/app"
	"github.com/Ionution132/chat-backend/internal/chat"
)

// Store is the persistence contract the chat core depends on.
type Store interface {
	// Append durably writes one message. A failed append means the message
	// must not be broadcast.
	Append(ctx context.Context, m chat.Message) error
	// RecentHistory returns up to limit messages for room, oldest first.
	// A room with no history yields an empty slice, not an error.
	RecentHistory(ctx context.Context, room string, limit int) ([]chat.Message, error)
}

// Open builds the backend selected by cfg.StoreBackend and runs any
// backend-specific setup (connectivity check, schema migration).
func Open(ctx context.Context, cfg app.Config, log *slog.Logger) (Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(cfg.SQLitePath, log)
	case "postgres":
		pg, err := NewPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, pg, log); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	case "redis":
		return NewRedis(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
