package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	courseCatalogKey = "catalog:courses"
	ebookCatalogKey  = "catalog:ebooks"
)

type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetCourses(ctx context.Context, courses []entity.CourseListing) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, courseCatalogKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetCourses(ctx context.Context) ([]entity.CourseListing, error) {
	data, err := r.client.Get(ctx, courseCatalogKey).Result()
	if err != nil {
		return nil, err
	}

	var courses []entity.CourseListing
	if err := json.Unmarshal([]byte(data), &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *CacheRepository) SetEbooks(ctx context.Context, ebooks []entity.EbookAccess) error {
	data, err := json.Marshal(ebooks)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, ebookCatalogKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetEbooks(ctx context.Context) ([]entity.EbookAccess, error) {
	data, err := r.client.Get(ctx, ebookCatalogKey).Result()
	if err != nil {
		return nil, err
	}

	var ebooks []entity.EbookAccess
	if err := json.Unmarshal([]byte(data), &ebooks); err != nil {
		return nil, err
	}

	return ebooks, nil
}

// InvalidateCatalogs drops the cached listings after a spreadsheet import
// touches catalog tables.
func (r *CacheRepository) InvalidateCatalogs(ctx context.Context) error {
	return r.client.Del(ctx, courseCatalogKey, ebookCatalogKey).Err()
}
