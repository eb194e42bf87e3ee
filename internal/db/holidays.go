package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"velour/internal/model"
)

// GetHoliday returns the override for a date, or nil if none exists.
func (db *DB) GetHoliday(ctx context.Context, date time.Time) (*model.HolidayOverride, error) {
	var h model.HolidayOverride
	var exceptions, reason sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT id, date, is_closed, exception_staff_ids, reason, created_at, updated_at
		FROM holidays
		WHERE date(date) = date(?)
		LIMIT 1`,
		date,
	).Scan(&h.ID, &h.Date, &h.IsClosed, &exceptions, &reason, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	h.ExceptionStaffIDs = parseStaffIDs(exceptions.String)
	if reason.Valid {
		h.Reason = reason.String
	}
	return &h, nil
}

// ListHolidays returns all overrides within [from, to], keyed by date
// string (YYYY-MM-DD).
func (db *DB) ListHolidays(ctx context.Context, from, to time.Time) (map[string]model.HolidayOverride, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, is_closed, exception_staff_ids, reason, created_at, updated_at
		FROM holidays
		WHERE date(date) >= date(?) AND date(date) <= date(?)
		ORDER BY date`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]model.HolidayOverride)
	for rows.Next() {
		var h model.HolidayOverride
		var exceptions, reason sql.NullString
		if err := rows.Scan(&h.ID, &h.Date, &h.IsClosed, &exceptions, &reason, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		h.ExceptionStaffIDs = parseStaffIDs(exceptions.String)
		if reason.Valid {
			h.Reason = reason.String
		}
		result[h.Date.Format("2006-01-02")] = h
	}
	return result, rows.Err()
}

// SetHoliday creates or updates the override for a date.
func (db *DB) SetHoliday(ctx context.Context, h *model.HolidayOverride) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO holidays (date, is_closed, exception_staff_ids, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			is_closed = excluded.is_closed,
			exception_staff_ids = excluded.exception_staff_ids,
			reason = excluded.reason,
			updated_at = excluded.updated_at`,
		h.Date, h.IsClosed, formatStaffIDs(h.ExceptionStaffIDs), h.Reason, now, now,
	)
	return err
}

// Exception ids are stored as a comma-separated list; unparsable chunks
// are skipped.
func parseStaffIDs(s string) []int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func formatStaffIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
