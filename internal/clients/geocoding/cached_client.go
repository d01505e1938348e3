package geocoding

import (
	"context"
	"strings"
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeoLocation, error)
}

// CachedClient remembers answers, misses included, so the same city is paid for once per TTL.
type CachedClient struct {
	client geocoder
	cache  *gocache.Cache
}

func NewCachedClient(client geocoder, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedClient{client: client, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedClient) Geocode(ctx context.Context, address string) (*models.GeoLocation, error) {
	key := strings.ToLower(strings.TrimSpace(address))

	if value, found := c.cache.Get(key); found {
		return value.(*models.GeoLocation), nil
	}

	location, err := c.client.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, location, gocache.DefaultExpiration)
	return location, nil
}
