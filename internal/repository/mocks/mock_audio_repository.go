package mocks

import (
	"context"

	"audiodrop/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAudioFileRepository struct {
	mock.Mock
}

func (m *MockAudioFileRepository) Create(ctx context.Context, f *model.AudioFile) (*model.AudioFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AudioFile), args.Error(1)
}

func (m *MockAudioFileRepository) List(ctx context.Context) ([]model.AudioFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AudioFile), args.Error(1)
}

func (m *MockAudioFileRepository) Latest(ctx context.Context) (*model.AudioFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AudioFile), args.Error(1)
}

func (m *MockAudioFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
