package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"audiodrop/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "name", "url", "storage_path", "created_by", "created_at"}

func newRepo(t *testing.T) (*AudioFilePostgres, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAudioFilePostgres(db), mock
}

func TestAudioFilePostgres_Create(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	now := time.Now().UTC()
	in := &model.AudioFile{
		Name:        "intro.mp3",
		URL:         "https://cdn.example.com/audio/owner/x.mp3",
		StoragePath: "owner/x.mp3",
		CreatedBy:   "owner",
	}

	mock.ExpectQuery("INSERT INTO audio_files").
		WithArgs(in.Name, in.URL, in.StoragePath, in.CreatedBy).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("gen-id", in.Name, in.URL, in.StoragePath, in.CreatedBy, now))

	out, err := repo.Create(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "gen-id", out.ID)
	assert.Equal(t, now, out.CreatedAt)
	assert.Equal(t, in.Name, out.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAudioFilePostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered rows", func(t *testing.T) {
		repo, mock := newRepo(t)
		newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
		older := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT (.+) FROM audio_files ORDER BY created_at DESC").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("b", "b.mp3", "u2", "p2", "o", newer).
				AddRow("a", "a.mp3", "u1", "p1", "o", older))

		items, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "b", items[0].ID)
		assert.Equal(t, "a", items[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM audio_files").
			WillReturnRows(sqlmock.NewRows(columns))

		items, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM audio_files").WillReturnError(errors.New("db down"))

		items, err := repo.List(ctx)

		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestAudioFilePostgres_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM audio_files ORDER BY (.+) LIMIT 1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("id-1", "latest.mp3", "u", "p", "o", time.Now()))

		f, err := repo.Latest(ctx)

		require.NoError(t, err)
		assert.Equal(t, "id-1", f.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM audio_files ORDER BY (.+) LIMIT 1").
			WillReturnRows(sqlmock.NewRows(columns))

		f, err := repo.Latest(ctx)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, f)
	})
}

func TestAudioFilePostgres_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM audio_files WHERE id = ?").
			WithArgs("test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "test-id"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM audio_files WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), sql.ErrNoRows)
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec("DELETE FROM audio_files").WillReturnError(errors.New("boom"))

		assert.EqualError(t, repo.Delete(ctx, "x"), "boom")
	})
}
