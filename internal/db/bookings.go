package db

import (
	"context"
	"database/sql"
	"time"

	"velour/internal/model"
)

// ListBookingsForDay returns non-cancelled bookings for a staff member
// (matched case-insensitively by name) on a calendar day.
func (db *DB) ListBookingsForDay(ctx context.Context, staffName string, day time.Time) ([]model.Booking, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	rows, err := db.QueryContext(ctx, `
		SELECT id, staff_name, client_name, COALESCE(client_phone, ''),
		       COALESCE(service_id, 0), COALESCE(service_name, ''),
		       start_time, status, COALESCE(comment, ''), created_at, updated_at
		FROM bookings
		WHERE lower(staff_name) = lower(?)
		AND start_time >= ? AND start_time < ?
		AND status != 'cancelled'
		ORDER BY start_time`,
		staffName, startOfDay, endOfDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListBookingsInRange bulk-fetches all non-cancelled bookings starting
// within [from, to), across all staff, in one query.
func (db *DB) ListBookingsInRange(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, staff_name, client_name, COALESCE(client_phone, ''),
		       COALESCE(service_id, 0), COALESCE(service_name, ''),
		       start_time, status, COALESCE(comment, ''), created_at, updated_at
		FROM bookings
		WHERE start_time >= ? AND start_time < ?
		AND status != 'cancelled'
		ORDER BY staff_name, start_time`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CreateBooking inserts a booking. The unique index on
// (staff_name, start_time) for non-cancelled rows makes a double-book of
// the same slot fail at commit time.
func (db *DB) CreateBooking(ctx context.Context, b *model.Booking) (int64, error) {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO bookings (staff_name, client_name, client_phone, service_id, service_name,
		                      start_time, status, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.StaffName, b.ClientName, b.ClientPhone, b.ServiceID, b.ServiceName,
		b.StartTime, b.Status, b.Comment, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateBookingStatus sets a booking's status.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	return err
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.StaffName, &b.ClientName, &b.ClientPhone,
			&b.ServiceID, &b.ServiceName,
			&b.StartTime, &b.Status, &b.Comment, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
