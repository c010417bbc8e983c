package model

import "time"

// AudioFile is one uploaded clip as stored in the audio_files table.
// URL is only ever set after the blob behind StoragePath was uploaded.
type AudioFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	StoragePath string    `json:"-"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
