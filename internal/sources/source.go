// Package sources holds the job board adapters. Every adapter turns one board's
// listing format into models.RawJob values; the pipeline drives them uniformly.
package sources

import (
	"context"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/pkg/errors"
)

var ErrMissingCredentials = errors.New("source credentials are missing")

// Query selects one slice of a board. Keyword-driven sources get one query per
// keyword; breadth sources get Category and an incrementing Page instead.
type Query struct {
	Keyword  string
	Lang     string
	Category string
	Page     int
}

type Capabilities struct {
	// Breadth sources are paged by category rather than searched per keyword.
	Breadth  bool
	Category string
	// StrictDescription sources drop a job whose short description cannot be expanded.
	StrictDescription bool
}

type Source interface {
	Name() string
	Capabilities() Capabilities
	Scrape(ctx context.Context, query Query) ([]models.RawJob, error)
}
