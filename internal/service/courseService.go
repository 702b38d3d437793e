package service

import (
	"context"
	"fmt"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
)

type courseService struct {
	courseRepo repository.CourseRepository
	cache      CatalogCache
	logger     *logrus.Logger
}

func NewCourseService(courseRepo repository.CourseRepository, cache CatalogCache, logger *logrus.Logger) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GetCatalog returns the public course listing, cache-aside. Cache failures
// count as misses.
func (s *courseService) GetCatalog(ctx context.Context) ([]entity.CourseListing, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCourses(ctx); err == nil {
			return cached, nil
		}
	}

	listed, err := s.courseRepo.GetAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]entity.CourseListing, 0, len(listed))
	for _, c := range listed {
		courses = append(courses, *c)
	}

	if s.cache != nil {
		if err := s.cache.SetCourses(ctx, courses); err != nil {
			s.logger.WithError(err).Warn("failed to cache course catalog")
		}
	}

	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*entity.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}
