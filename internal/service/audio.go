package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"audiodrop/internal/model"
	"audiodrop/internal/repository"
	"audiodrop/internal/session"
	"audiodrop/internal/storage"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("audio file not found")
	ErrReaderNil        = errors.New("reader is nil")
	ErrUploadInProgress = errors.New("an upload is already in progress")
)

// AudioListResult is the service-level DTO for the management list.
type AudioListResult struct {
	Items []model.AudioFile `json:"data"`
	Total int               `json:"total"`
}

// AudioService defines the use cases behind the playback and management views.
type AudioService interface {
	// List returns every audio file, newest first.
	List(ctx context.Context) (*AudioListResult, error)

	// Latest returns the newest audio file or ErrNotFound.
	Latest(ctx context.Context) (*model.AudioFile, error)

	// Upload stores the blob under <owner>/<random><ext>, then records it.
	// At most one upload per owner runs at a time.
	Upload(ctx context.Context, owner *session.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.AudioFile, error)

	// Delete removes the record. The blob is left in storage.
	Delete(ctx context.Context, id string) error
}

type audioService struct {
	store   storage.Storage
	repo    repository.AudioFileRepository
	log     *zap.Logger
	metrics *Metrics

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewAudioService constructs a new AudioService. metrics may be nil.
func NewAudioService(store storage.Storage, repo repository.AudioFileRepository, log *zap.Logger, metrics *Metrics) AudioService {
	if log == nil {
		log = zap.NewNop()
	}
	return &audioService{
		store:    store,
		repo:     repo,
		log:      log.With(zap.String("component", "audio_service")),
		metrics:  metrics,
		inflight: make(map[string]struct{}),
	}
}

func (s *audioService) List(ctx context.Context) (res *AudioListResult, err error) {
	defer func() { s.metrics.observe("list", err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audio files: %w", err)
	}
	return &AudioListResult{Items: items, Total: len(items)}, nil
}

func (s *audioService) Latest(ctx context.Context) (f *model.AudioFile, err error) {
	defer func() {
		if !errors.Is(err, ErrNotFound) {
			s.metrics.observe("latest", err)
		}
	}()

	f, err = s.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest audio file: %w", err)
	}
	return f, nil
}

func (s *audioService) Upload(ctx context.Context, owner *session.Session, r io.Reader, originalFilename, contentType string, size int64) (f *model.AudioFile, err error) {
	if owner == nil || owner.UserID == "" {
		return nil, session.ErrNoSession
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if !s.acquire(owner.UserID) {
		return nil, ErrUploadInProgress
	}
	defer s.release(owner.UserID)
	defer func() { s.metrics.observe("upload", err) }()

	key := storagePath(owner.UserID, originalFilename)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.Create(ctx, &model.AudioFile{
		Name:        originalFilename,
		URL:         s.store.PublicURL(objInfo.Key),
		StoragePath: objInfo.Key,
		CreatedBy:   owner.UserID,
	})
	if err != nil {
		// The blob stays behind unreferenced; nothing points at it.
		s.log.Warn("orphaned_blob",
			zap.String("storage_path", objInfo.Key),
			zap.String("owner", owner.UserID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *audioService) Delete(ctx context.Context, id string) (err error) {
	if id == "" {
		return ErrIDRequired
	}
	defer func() { s.metrics.observe("delete", err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete audio file: %w", err)
	}
	return nil
}

func (s *audioService) acquire(owner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[owner]; busy {
		return false
	}
	s.inflight[owner] = struct{}{}
	return true
}

func (s *audioService) release(owner string) {
	s.mu.Lock()
	delete(s.inflight, owner)
	s.mu.Unlock()
}

// storagePath builds <owner>/<uuid><ext>; only the extension of the
// original name survives so user input never shapes the key.
func storagePath(owner, originalFilename string) string {
	ext := filepath.Ext(filepath.Base(originalFilename))
	return path.Join(owner, uuid.NewString()+ext)
}
