package mocks

import (
	"context"
	"io"

	"audiodrop/internal/model"
	"audiodrop/internal/service"
	"audiodrop/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) List(ctx context.Context) (*service.AudioListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AudioListResult), args.Error(1)
}

func (m *MockAudioService) Latest(ctx context.Context) (*model.AudioFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AudioFile), args.Error(1)
}

func (m *MockAudioService) Upload(ctx context.Context, owner *session.Session, r io.Reader, originalFilename, contentType string, size int64) (*model.AudioFile, error) {
	args := m.Called(ctx, owner, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AudioFile), args.Error(1)
}

func (m *MockAudioService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
