package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts the record. Payload is stored as JSONB.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO detections (id, kind, label, confidence, explanation, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		record.ID, record.Kind, record.Label, record.Confidence, record.Explanation, payload, record.CreatedAt,
	)
	return err
}

// GetByID returns a record by its ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, kind, label, confidence, explanation, payload, created_at
		FROM detections WHERE id = $1`, id)
	return scanRecord(row)
}

// List returns records newest-first with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, kind, label, confidence, explanation, payload, created_at
		FROM detections ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var payload []byte
	err := row.Scan(&record.ID, &record.Kind, &record.Label, &record.Confidence, &record.Explanation, &payload, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &record.Payload); err != nil {
			record.Payload = nil
		}
	}
	return record, nil
}

var _ Repo = (*PGRepo)(nil)
