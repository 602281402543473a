package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"log/slog"

	"github.com/Ionution132/chat-backend/internal/app"
	"github.com/Ionution132/chat-backend/internal/chat"
)

// Postgres is the relational backend. The BIGSERIAL seq column is the
// per-room insertion order.
type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgres connects to postgres and returns a pool wrapper
func NewPostgres(ctx context.Context, cfg app.Config, log *slog.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, cfg.PGURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Postgres{pool: pool, log: log}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// Append inserts one message; the sequence is assigned by the database.
func (p *Postgres) Append(ctx context.Context, m chat.Message) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO messages (room, username, body, image, sent_time, sent_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.Room, m.Username, m.Text, m.Image, m.Time, m.Date)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// RecentHistory returns the newest limit messages for room in ascending
// sequence order. The inner query picks the tail, the outer flips it back.
func (p *Postgres) RecentHistory(ctx context.Context, room string, limit int) ([]chat.Message, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT room, username, body, image, sent_time, sent_date FROM (
			SELECT seq, room, username, body, image, sent_time, sent_date
			FROM messages
			WHERE room = $1
			ORDER BY seq DESC
			LIMIT $2
		) tail
		ORDER BY seq ASC
	`, room, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []chat.Message{}
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.Room, &m.Username, &m.Text, &m.Image, &m.Time, &m.Date); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
