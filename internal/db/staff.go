package db

import (
	"context"
	"database/sql"
	"time"

	"velour/internal/model"
)

// GetStaff returns a staff member by id, or nil if no such row exists.
func (db *DB) GetStaff(ctx context.Context, id int64) (*model.Staff, error) {
	var s model.Staff
	err := db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(phone, ''), is_active, is_bookable, created_at, updated_at
		FROM staff WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Name, &s.Phone, &s.IsActive, &s.IsBookable, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListBookableStaff returns all active staff that clients may book.
func (db *DB) ListBookableStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, COALESCE(phone, ''), is_active, is_bookable, created_at, updated_at
		FROM staff
		WHERE is_active = 1 AND is_bookable = 1
		ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.IsActive, &s.IsBookable, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// CreateStaff inserts a staff member and returns the new id.
func (db *DB) CreateStaff(ctx context.Context, s *model.Staff) (int64, error) {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO staff (name, phone, is_active, is_bookable, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Name, s.Phone, s.IsActive, s.IsBookable, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
