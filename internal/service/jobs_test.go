package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJobService_Create_Success(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	mockQueue := mocks.NewWorkQueueMock(t)
	service := NewJobService(mockStore, mockQueue)

	mockStore.EXPECT().CreateJob(mock.Anything, mock.AnythingOfType("*domain.Job")).
		Return(nil).
		Once()
	mockQueue.EXPECT().Enqueue(mock.Anything, mock.MatchedBy(func(d domain.JobDescriptor) bool {
		return d.SourceURL == "https://youtu.be/abc" && d.TargetLang == "vi" && d.WantsDub()
	})).
		Return(nil).
		Once()

	job, err := service.Create(context.Background(), CreateJobRequest{
		SourceURL:  "https://youtu.be/abc",
		TargetLang: "vi",
		EnableDub:  true,
		VoiceID:    domain.VoiceFemaleSoft,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, domain.JobStatusQueued, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Equal(t, domain.VoiceFemaleSoft, job.VoiceID)
}

func TestJobService_Create_DropsVoiceWithoutDub(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	mockQueue := mocks.NewWorkQueueMock(t)
	service := NewJobService(mockStore, mockQueue)

	mockStore.EXPECT().CreateJob(mock.Anything, mock.Anything).Return(nil).Once()
	mockQueue.EXPECT().Enqueue(mock.Anything, mock.Anything).Return(nil).Once()

	job, err := service.Create(context.Background(), CreateJobRequest{
		SourceURL:  "https://youtu.be/abc",
		TargetLang: "en",
		VoiceID:    "anything",
	})

	require.NoError(t, err)
	assert.Empty(t, job.VoiceID)
	assert.False(t, job.Descriptor().WantsDub())
}

func TestJobService_Create_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  CreateJobRequest
	}{
		{"unsupported language", CreateJobRequest{SourceURL: "u", TargetLang: "xx"}},
		{"unknown voice", CreateJobRequest{SourceURL: "u", TargetLang: "vi", EnableDub: true, VoiceID: "robot"}},
		{"dub without voice", CreateJobRequest{SourceURL: "u", TargetLang: "vi", EnableDub: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewJobService(mocks.NewJobStoreMock(t), mocks.NewWorkQueueMock(t))

			_, err := service.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestJobService_Create_EnqueueFails(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	mockQueue := mocks.NewWorkQueueMock(t)
	service := NewJobService(mockStore, mockQueue)

	mockStore.EXPECT().CreateJob(mock.Anything, mock.Anything).Return(nil).Once()
	mockQueue.EXPECT().Enqueue(mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	mockStore.EXPECT().UpdateJobStatus(mock.Anything, mock.AnythingOfType("string"), domain.JobStatusError, 0, "enqueue: connection refused").
		Return(nil).
		Once()

	_, err := service.Create(context.Background(), CreateJobRequest{SourceURL: "u", TargetLang: "fr"})

	assert.ErrorIs(t, err, domain.ErrQueue)
}

func TestJobService_Get(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	service := NewJobService(mockStore, mocks.NewWorkQueueMock(t))

	job := &domain.Job{ID: "j1", Status: domain.JobStatusDone, Progress: 100}
	assets := []domain.Asset{{ID: 1, JobID: "j1", Kind: domain.AssetSRT, Language: "vi"}}
	mockStore.EXPECT().GetJob(mock.Anything, "j1").Return(job, nil).Once()
	mockStore.EXPECT().ListAssets(mock.Anything, "j1").Return(assets, nil).Once()

	details, err := service.Get(context.Background(), "j1")

	require.NoError(t, err)
	assert.Equal(t, job, details.Job)
	assert.Equal(t, assets, details.Assets)
}

func TestJobService_Get_NotFound(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	service := NewJobService(mockStore, mocks.NewWorkQueueMock(t))

	mockStore.EXPECT().GetJob(mock.Anything, "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobService_List_DefaultLimit(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	service := NewJobService(mockStore, mocks.NewWorkQueueMock(t))

	mockStore.EXPECT().ListJobs(mock.Anything, DefaultListLimit).Return([]*domain.Job{}, nil).Once()

	jobs, err := service.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobService_Assets_Grouped(t *testing.T) {
	mockStore := mocks.NewJobStoreMock(t)
	service := NewJobService(mockStore, mocks.NewWorkQueueMock(t))

	mockStore.EXPECT().GetJob(mock.Anything, "j1").Return(&domain.Job{ID: "j1"}, nil).Once()
	mockStore.EXPECT().ListAssets(mock.Anything, "j1").Return([]domain.Asset{
		{Kind: domain.AssetTranscript, Language: "en"},
		{Kind: domain.AssetTranscript, Language: "vi"},
		{Kind: domain.AssetSRT, Language: "vi"},
	}, nil).Once()

	grouped, err := service.Assets(context.Background(), "j1")

	require.NoError(t, err)
	assert.Len(t, grouped[domain.AssetTranscript], 2)
	assert.Len(t, grouped[domain.AssetSRT], 1)
	assert.Empty(t, grouped[domain.AssetDubVideo])
}
