package repository

import (
	"context"

	"audiodrop/internal/model"
)

// AudioFileRepository defines data access for the audio_files table.
// No business logic here, strictly persistence operations.
type AudioFileRepository interface {
	// Create inserts a new record. ID and CreatedAt are assigned by the database
	// and returned on the stored record.
	Create(ctx context.Context, f *model.AudioFile) (*model.AudioFile, error)

	// List returns every record, newest first.
	List(ctx context.Context) ([]model.AudioFile, error)

	// Latest returns the newest record, or sql.ErrNoRows when the table is empty.
	Latest(ctx context.Context) (*model.AudioFile, error)

	// Delete removes a record by ID. It returns sql.ErrNoRows if nothing matched.
	Delete(ctx context.Context, id string) error
}
