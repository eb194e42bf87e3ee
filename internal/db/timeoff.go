package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"velour/internal/model"
)

// ListTimeOffForDay returns intervals that intersect the given calendar
// day, including partial overlaps.
func (db *DB) ListTimeOffForDay(ctx context.Context, staffID int64, day time.Time) ([]model.TimeOff, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	rows, err := db.QueryContext(ctx, `
		SELECT id, staff_id, start_time, end_time, COALESCE(reason, ''), created_at
		FROM time_off
		WHERE staff_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time`,
		staffID, endOfDay, startOfDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTimeOff(rows)
}

// ListTimeOffInRange bulk-fetches intervals overlapping [from, to) for
// all given staff in one query, keyed by staff id.
func (db *DB) ListTimeOffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) (map[int64][]model.TimeOff, error) {
	result := make(map[int64][]model.TimeOff)
	if len(staffIDs) == 0 {
		return result, nil
	}

	args := make([]any, 0, len(staffIDs)+2)
	for _, id := range staffIDs {
		args = append(args, id)
	}
	args = append(args, to, from)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, staff_id, start_time, end_time, COALESCE(reason, ''), created_at
		FROM time_off
		WHERE staff_id IN (%s) AND start_time < ? AND end_time > ?
		ORDER BY staff_id, start_time`, placeholders(len(staffIDs))),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offs, err := scanTimeOff(rows)
	if err != nil {
		return nil, err
	}
	for _, off := range offs {
		result[off.StaffID] = append(result[off.StaffID], off)
	}
	return result, nil
}

// CreateTimeOff inserts an interval.
func (db *DB) CreateTimeOff(ctx context.Context, off *model.TimeOff) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO time_off (staff_id, start_time, end_time, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		off.StaffID, off.StartTime, off.EndTime, off.Reason, time.Now(),
	)
	return err
}

func scanTimeOff(rows *sql.Rows) ([]model.TimeOff, error) {
	var offs []model.TimeOff
	for rows.Next() {
		var off model.TimeOff
		if err := rows.Scan(&off.ID, &off.StaffID, &off.StartTime, &off.EndTime, &off.Reason, &off.CreatedAt); err != nil {
			return nil, err
		}
		offs = append(offs, off)
	}
	return offs, rows.Err()
}
