package repository

import (
	"context"
	"errors"
	"time"

	"fakeout/internal/database"
	"fakeout/internal/models"

	"gorm.io/gorm"
)

// Postgres is the gorm-backed durable store handed to the game engine.
type Postgres struct{}

func NewPostgres() *Postgres {
	return &Postgres{}
}

func (s *Postgres) GetTotal(ctx context.Context, playerID string) (int64, error) {
	var row models.PlayerTotal
	result := database.DB.WithContext(ctx).First(&row, "player_id = ?", playerID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if result.Error != nil {
		return 0, result.Error
	}
	return row.TotalTokens, nil
}

func (s *Postgres) IncrementTotal(ctx context.Context, playerID string, amount int64) (int64, error) {
	query := `
		INSERT INTO player_totals (player_id, total_tokens, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET total_tokens = player_totals.total_tokens + EXCLUDED.total_tokens,
		    updated_at = NOW()
		RETURNING total_tokens
	`
	var total int64
	err := database.DB.WithContext(ctx).Raw(query, playerID, amount).Scan(&total).Error
	return total, err
}

func (s *Postgres) RecordOutcome(ctx context.Context, playerID string, wasPerfect bool, streak int, streakDate time.Time) error {
	perfectDelta := 0
	if wasPerfect {
		perfectDelta = 1
	}
	query := `
		INSERT INTO player_totals (player_id, total_tokens, perfect_sessions, current_streak, last_streak_date, created_at, updated_at)
		VALUES (?, 0, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (player_id) DO UPDATE
		SET perfect_sessions = player_totals.perfect_sessions + ?,
		    current_streak = ?,
		    last_streak_date = ?,
		    updated_at = NOW()
	`
	return database.DB.WithContext(ctx).
		Exec(query, playerID, perfectDelta, streak, streakDate, perfectDelta, streak, streakDate).Error
}

func (s *Postgres) SaveArchive(ctx context.Context, arch *models.SessionArchive) error {
	return database.DB.WithContext(ctx).Create(arch).Error
}

// Leaderboard returns the top players by persisted token total.
func Leaderboard(ctx context.Context, limit int) ([]models.PlayerTotal, error) {
	var rows []models.PlayerTotal
	result := database.DB.WithContext(ctx).
		Order("total_tokens DESC, updated_at DESC").
		Limit(limit).
		Find(&rows)
	return rows, result.Error
}
