package worker

import (
	"context"
	"time"

	"github.com/eboniejc/muse-app/internal/service"

	"github.com/sirupsen/logrus"
)

// CatalogWarmWorker keeps the course catalog cache populated so the public
// listing rarely pays the database round trip.
type CatalogWarmWorker struct {
	courseService service.CourseService
	cache         service.CatalogCache
	interval      time.Duration
}

func NewCatalogWarmWorker(courseService service.CourseService, cache service.CatalogCache, interval time.Duration) *CatalogWarmWorker {
	return &CatalogWarmWorker{
		courseService: courseService,
		cache:         cache,
		interval:      interval,
	}
}

func (w *CatalogWarmWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Catalog warm worker started")
	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Catalog warm worker stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CatalogWarmWorker) warm(ctx context.Context) {
	if w.cache != nil {
		if err := w.cache.InvalidateCatalogs(ctx); err != nil {
			logrus.Errorf("Failed to invalidate catalog cache: %v", err)
		}
	}
	if _, err := w.courseService.GetCatalog(ctx); err != nil {
		logrus.Errorf("Failed to warm course catalog: %v", err)
		return
	}
	logrus.Debug("Course catalog cache warmed")
}
