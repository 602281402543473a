package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ionution132/chat-backend/internal/chat"
)

// messageRow is the sqlite schema for one message. The autoincrement ID is
// the insertion-order sequence.
type messageRow struct {
	ID       uint   `gorm:"primarykey"`
	Room     string `gorm:"index;size:128;not null"`
	Username string `gorm:"size:128"`
	Body     string
	Image    string
	SentTime string `gorm:"size:64"`
	SentDate string `gorm:"size:64"`
}

// TableName returns the table name for messageRow.
func (messageRow) TableName() string { return "messages" }

// SQLite is the single-file backend, handy when the server runs without any
// external service.
type SQLite struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewSQLite opens (or creates) the database file and migrates the schema.
func NewSQLite(path string, log *slog.Logger) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&messageRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db, log: log}, nil
}

// Append inserts one message row.
func (s *SQLite) Append(ctx context.Context, m chat.Message) error {
	row := messageRow{
		Room:     m.Room,
		Username: m.Username,
		Body:     m.Text,
		Image:    m.Image,
		SentTime: m.Time,
		SentDate: m.Date,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// RecentHistory fetches the newest limit rows for room and returns them in
// ascending insertion order.
func (s *SQLite) RecentHistory(ctx context.Context, room string, limit int) ([]chat.Message, error) {
	var rows []messageRow
	err := s.db.WithContext(ctx).
		Where("room = ?", room).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	out := make([]chat.Message, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = chat.Message{
			Room:     r.Room,
			Username: r.Username,
			Text:     r.Body,
			Image:    r.Image,
			Time:     r.SentTime,
			Date:     r.SentDate,
		}
	}
	return out, nil
}
