package postgres

import (
	"context"
	"database/sql"

	"audiodrop/internal/model"
	"audiodrop/internal/repository"
)

const audioColumns = `id, name, url, storage_path, created_by, created_at`

// AudioFilePostgres is a PostgreSQL implementation of repository.AudioFileRepository.
type AudioFilePostgres struct {
	db *sql.DB
}

// NewAudioFilePostgres creates a new AudioFilePostgres repository.
func NewAudioFilePostgres(db *sql.DB) *AudioFilePostgres {
	return &AudioFilePostgres{db: db}
}

var _ repository.AudioFileRepository = (*AudioFilePostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanAudioFile(s scanner) (*model.AudioFile, error) {
	var f model.AudioFile
	if err := s.Scan(
		&f.ID,
		&f.Name,
		&f.URL,
		&f.StoragePath,
		&f.CreatedBy,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new row and lets the database assign id and created_at.
func (r *AudioFilePostgres) Create(ctx context.Context, f *model.AudioFile) (*model.AudioFile, error) {
	const q = `
		INSERT INTO audio_files (name, url, storage_path, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + audioColumns
	row := r.db.QueryRowContext(ctx, q,
		f.Name,
		f.URL,
		f.StoragePath,
		f.CreatedBy,
	)
	return scanAudioFile(row)
}

// List returns all rows ordered by created_at descending.
func (r *AudioFilePostgres) List(ctx context.Context) ([]model.AudioFile, error) {
	const q = `
		SELECT ` + audioColumns + `
		FROM audio_files
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AudioFile, 0)
	for rows.Next() {
		f, err := scanAudioFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Latest returns the single newest row.
func (r *AudioFilePostgres) Latest(ctx context.Context) (*model.AudioFile, error) {
	const q = `
		SELECT ` + audioColumns + `
		FROM audio_files
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return scanAudioFile(r.db.QueryRowContext(ctx, q))
}

// Delete removes a row by ID.
func (r *AudioFilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM audio_files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
