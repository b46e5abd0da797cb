package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	repo := new(MockRepository)
	job := CleanupJob{Service: NewService(repo, clockwork.NewFakeClock(), Config{Retention: 1})}
	repo.On("CleanupOldEvents", mock.Anything, mock.Anything).Return(int64(100), nil).Once()
	repo.On("CleanupOldEvents", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout")).Once()

	assert.Equal(t, JobNameCleanup, job.Name())
	assert.NoError(t, job.Process(context.Background()))
	assert.Error(t, job.Process(context.Background()))
	repo.AssertExpectations(t)
}
