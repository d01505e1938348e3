package services

import (
	"context"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

type linkLookup interface {
	ExistsByLink(ctx context.Context, link string) (bool, error)
}

// Deduplicator matches on the exact canonical link only. A posting republished under
// another URL is a different job as far as it is concerned.
type Deduplicator struct {
	jobs linkLookup
}

func NewDeduplicator(jobs linkLookup) *Deduplicator {
	return &Deduplicator{jobs: jobs}
}

func (d *Deduplicator) IsDuplicate(ctx context.Context, job *models.JobPosting) (bool, error) {
	if job.Link == "" {
		return false, nil
	}
	return d.jobs.ExistsByLink(ctx, job.Link)
}
