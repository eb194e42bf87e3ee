package db

import (
	"context"
	"database/sql"
	"time"

	"velour/internal/model"
)

// GetServiceByID returns a catalog entry, or nil if no such row exists.
func (db *DB) GetServiceByID(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	err := db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), duration_minutes, COALESCE(price, 0), is_active, created_at, updated_at
		FROM services WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveServices returns the active service catalog.
func (db *DB) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), duration_minutes, COALESCE(price, 0), is_active, created_at, updated_at
		FROM services
		WHERE is_active = 1
		ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// CreateService inserts a catalog entry and returns the new id.
func (db *DB) CreateService(ctx context.Context, s *model.Service) (int64, error) {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO services (name, description, duration_minutes, price, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Description, s.DurationMinutes, s.Price, s.IsActive, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
