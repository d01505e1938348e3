package services

import (
	"context"
	"errors"
	"testing"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_IsRelevant(t *testing.T) {
	keywords := []string{"developer", "Golang", " "}

	assert.True(t, IsRelevant("Senior Python DEVELOPER", keywords))
	assert.True(t, IsRelevant("golang engineer", keywords))
	assert.False(t, IsRelevant("Accountant", keywords))
	assert.False(t, IsRelevant("", keywords))
	assert.False(t, IsRelevant("   ", keywords))
	assert.False(t, IsRelevant("Developer", nil))
}

func Test_Deduplicator_EmptyLink_IsNotDuplicate(t *testing.T) {
	jobs := &mockJobs{}
	dedup := NewDeduplicator(jobs)

	duplicate, err := dedup.IsDuplicate(context.Background(), &models.JobPosting{})

	assert.NoError(t, err)
	assert.False(t, duplicate)
	jobs.AssertNotCalled(t, "ExistsByLink", mock.Anything, mock.Anything)
}

func Test_Deduplicator_ExactLinkLookup(t *testing.T) {
	jobs := &mockJobs{}
	jobs.On("ExistsByLink", mock.Anything, "http://x/1").Return(true, nil)
	jobs.On("ExistsByLink", mock.Anything, "http://x/1?utm=feed").Return(false, nil)
	jobs.On("ExistsByLink", mock.Anything, "http://x/2").Return(false, errors.New("db down"))
	dedup := NewDeduplicator(jobs)

	duplicate, err := dedup.IsDuplicate(context.Background(), &models.JobPosting{Link: "http://x/1"})
	assert.NoError(t, err)
	assert.True(t, duplicate)

	duplicate, err = dedup.IsDuplicate(context.Background(), &models.JobPosting{Link: "http://x/1?utm=feed"})
	assert.NoError(t, err)
	assert.False(t, duplicate)

	_, err = dedup.IsDuplicate(context.Background(), &models.JobPosting{Link: "http://x/2"})
	assert.Error(t, err)
}
