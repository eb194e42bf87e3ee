package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"velour/internal/model"
)

// DefaultScheduleConfig provides fallback weekly hours used when seeding
// schedules for staff that have none.
var DefaultScheduleConfig = struct {
	StartTime string
	EndTime   string
}{
	StartTime: "10:00",
	EndTime:   "20:00",
}

// GetWeeklySchedule returns the template row for a staff member on a
// weekday (0 = Sunday), or nil if no row exists. Inactive rows are
// returned as-is; the caller decides what an inactive row means.
func (db *DB) GetWeeklySchedule(ctx context.Context, staffID int64, dayOfWeek int) (*model.WeeklySchedule, error) {
	var s model.WeeklySchedule
	err := db.QueryRowContext(ctx, `
		SELECT id, staff_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM staff_schedules
		WHERE staff_id = ? AND day_of_week = ?
		LIMIT 1`,
		staffID, dayOfWeek,
	).Scan(&s.ID, &s.StaffID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListWeeklySchedules bulk-fetches template rows for all given staff in
// one query, keyed by staff id.
func (db *DB) ListWeeklySchedules(ctx context.Context, staffIDs []int64) (map[int64][]model.WeeklySchedule, error) {
	result := make(map[int64][]model.WeeklySchedule)
	if len(staffIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(staffIDs))
	for i, id := range staffIDs {
		args[i] = id
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, staff_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
		FROM staff_schedules
		WHERE staff_id IN (%s)
		ORDER BY staff_id, day_of_week`, placeholders(len(staffIDs))),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.WeeklySchedule
		if err := rows.Scan(&s.ID, &s.StaffID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result[s.StaffID] = append(result[s.StaffID], s)
	}
	return result, rows.Err()
}

// CreateWeeklySchedule inserts a template row.
func (db *DB) CreateWeeklySchedule(ctx context.Context, s *model.WeeklySchedule) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO staff_schedules (staff_id, day_of_week, start_time, end_time, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.StaffID, s.DayOfWeek, s.StartTime, s.EndTime, s.IsActive, now, now,
	)
	return err
}

// UpdateScheduleHours updates working hours for a staff member's weekday.
func (db *DB) UpdateScheduleHours(ctx context.Context, staffID int64, dayOfWeek int, startTime, endTime string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE staff_schedules
		SET start_time = ?, end_time = ?, updated_at = ?
		WHERE staff_id = ? AND day_of_week = ?`,
		startTime, endTime, time.Now(), staffID, dayOfWeek,
	)
	return err
}

// EnsureDefaultSchedules creates default weekly rows for every bookable
// staff member missing them, so fresh staff are immediately schedulable.
func (db *DB) EnsureDefaultSchedules(ctx context.Context) error {
	staff, err := db.ListBookableStaff(ctx)
	if err != nil {
		return fmt.Errorf("list staff: %w", err)
	}

	for _, st := range staff {
		for dayOfWeek := 0; dayOfWeek <= 6; dayOfWeek++ {
			exists, err := db.scheduleExists(ctx, st.ID, dayOfWeek)
			if err != nil {
				return fmt.Errorf("check schedule: %w", err)
			}
			if exists {
				continue
			}

			sched := &model.WeeklySchedule{
				StaffID:   st.ID,
				DayOfWeek: dayOfWeek,
				StartTime: DefaultScheduleConfig.StartTime,
				EndTime:   DefaultScheduleConfig.EndTime,
				IsActive:  true,
			}
			if err := db.CreateWeeklySchedule(ctx, sched); err != nil {
				return fmt.Errorf("create schedule for staff %d day %d: %w", st.ID, dayOfWeek, err)
			}
		}
	}
	return nil
}

func (db *DB) scheduleExists(ctx context.Context, staffID int64, dayOfWeek int) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM staff_schedules WHERE staff_id = ? AND day_of_week = ?",
		staffID, dayOfWeek,
	).Scan(&count)
	return count > 0, err
}
