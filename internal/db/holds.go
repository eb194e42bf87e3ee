package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"velour/internal/model"
)

// ListActiveHolds returns holds for a staff member on a calendar day
// that have not expired as of now. Expired holds simply stop matching
// the predicate; no sweeper is involved.
func (db *DB) ListActiveHolds(ctx context.Context, staffID int64, day, now time.Time) ([]model.Hold, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	rows, err := db.QueryContext(ctx, `
		SELECT id, staff_id, start_time, expires_at, created_at
		FROM holds
		WHERE staff_id = ?
		AND start_time >= ? AND start_time < ?
		AND expires_at > ?
		ORDER BY start_time`,
		staffID, startOfDay, endOfDay, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []model.Hold
	for rows.Next() {
		var h model.Hold
		if err := rows.Scan(&h.ID, &h.StaffID, &h.StartTime, &h.ExpiresAt, &h.CreatedAt); err != nil {
			return nil, err
		}
		holds = append(holds, h)
	}
	return holds, rows.Err()
}

// CreateHold places a soft reservation on a staff+time and returns its
// id. The write path extends or consumes the hold when the booking
// commits.
func (db *DB) CreateHold(ctx context.Context, staffID int64, start time.Time, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO holds (id, staff_id, start_time, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, staffID, start, now.Add(ttl), now,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteHold removes a hold, typically after its booking committed.
func (db *DB) DeleteHold(ctx context.Context, id string) error {
	_, err := db.ExecContext(ctx, "DELETE FROM holds WHERE id = ?", id)
	return err
}
