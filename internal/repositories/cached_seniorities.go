package repositories

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type seniorityRepository interface {
	Upsert(ctx context.Context, level string) (uint, error)
}

type CachedSeniorities struct {
	repo  seniorityRepository
	cache *gocache.Cache
}

func NewCachedSeniorities(repo seniorityRepository) *CachedSeniorities {
	return &CachedSeniorities{repo: repo, cache: gocache.New(time.Hour, 2*time.Hour)}
}

func (c *CachedSeniorities) Upsert(ctx context.Context, level string) (uint, error) {
	if value, found := c.cache.Get(level); found {
		return value.(uint), nil
	}

	id, err := c.repo.Upsert(ctx, level)
	if err == nil && id != 0 {
		c.cache.Set(level, id, gocache.DefaultExpiration)
	}
	return id, err
}
