package service

import (
	"context"
	"fmt"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
)

type ebookService struct {
	ebookRepo      repository.EbookRepository
	enrollmentRepo repository.EnrollmentRepository
	completionRepo repository.LessonCompletionRepository
	cache          CatalogCache
	logger         *logrus.Logger
}

func NewEbookService(
	ebookRepo repository.EbookRepository,
	enrollmentRepo repository.EnrollmentRepository,
	completionRepo repository.LessonCompletionRepository,
	cache CatalogCache,
	logger *logrus.Logger,
) EbookService {
	return &ebookService{
		ebookRepo:      ebookRepo,
		enrollmentRepo: enrollmentRepo,
		completionRepo: completionRepo,
		cache:          cache,
		logger:         logger,
	}
}

// ListForUser returns the e-book library with per-user unlock flags. An
// e-book unlocks once the lesson matching its sort order (0-based or 1-based
// sheet data both count) is completed in the user's enrollment for the
// e-book's course. When the library cannot be read the locked fallback
// catalog is served so the page still renders.
func (s *ebookService) ListForUser(ctx context.Context, userID int64) ([]*entity.EbookAccess, error) {
	ebooks, err := s.activeEbooks(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list ebooks, serving fallback catalog")
		return fallbackEbooks(), nil
	}
	if len(ebooks) == 0 {
		return fallbackEbooks(), nil
	}

	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID, []entity.EnrollmentStatus{
		entity.EnrollmentStatusActive,
		entity.EnrollmentStatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}

	enrollmentByCourse := make(map[int64]int64, len(enrollments))
	enrollmentIDs := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		enrollmentByCourse[e.CourseID] = e.ID
		enrollmentIDs = append(enrollmentIDs, e.ID)
	}

	completed := make(map[completionKey]bool)
	if len(enrollmentIDs) > 0 {
		completions, err := s.completionRepo.ListByEnrollments(ctx, enrollmentIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load lesson completions: %w", err)
		}
		for _, c := range completions {
			completed[completionKey{c.EnrollmentID, c.LessonNumber}] = true
		}
	}

	for _, ebook := range ebooks {
		enrollmentID, ok := enrollmentByCourse[ebook.CourseID]
		if !ok || ebook.CourseID == 0 {
			continue
		}
		ebook.IsUnlocked = completed[completionKey{enrollmentID, ebook.SortOrder}] ||
			completed[completionKey{enrollmentID, ebook.SortOrder + 1}]
	}

	return ebooks, nil
}

// activeEbooks reads the shared library listing, cache-aside. The cached
// form is the pre-unlock listing; unlock flags are resolved per user on
// every request, so copies are handed out rather than cached pointers.
func (s *ebookService) activeEbooks(ctx context.Context) ([]*entity.EbookAccess, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetEbooks(ctx); err == nil && len(cached) > 0 {
			ebooks := make([]*entity.EbookAccess, 0, len(cached))
			for i := range cached {
				cp := cached[i]
				cp.IsUnlocked = false
				ebooks = append(ebooks, &cp)
			}
			return ebooks, nil
		}
	}

	ebooks, err := s.ebookRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(ebooks) > 0 {
		listing := make([]entity.EbookAccess, 0, len(ebooks))
		for _, e := range ebooks {
			listing = append(listing, *e)
		}
		if err := s.cache.SetEbooks(ctx, listing); err != nil {
			s.logger.WithError(err).Warn("failed to cache ebook library")
		}
	}

	return ebooks, nil
}

type completionKey struct {
	enrollmentID int64
	lessonNumber int
}
