package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
)

// ScheduleReconciler is the table-specific import path for lesson schedules.
type ScheduleReconciler interface {
	ReconcileRows(ctx context.Context, rows []map[string]any) (*entity.ImportResult, error)
}

// sheetsService is the spreadsheet sync entry point. Most tables take the
// generic upsert path; lesson schedules go through the reconciler because an
// import there has push-notification side effects.
type sheetsService struct {
	sheetsRepo repository.SheetsRepository
	reconciler ScheduleReconciler
	cache      CatalogCache
	logger     *logrus.Logger
}

func NewSheetsService(
	sheetsRepo repository.SheetsRepository,
	reconciler ScheduleReconciler,
	cache CatalogCache,
	logger *logrus.Logger,
) SheetsService {
	return &sheetsService{
		sheetsRepo: sheetsRepo,
		reconciler: reconciler,
		cache:      cache,
		logger:     logger,
	}
}

func (s *sheetsService) ImportBatch(ctx context.Context, req *entity.ImportRequest) (*entity.ImportResult, error) {
	if len(req.Rows) == 0 {
		return &entity.ImportResult{Success: true, Message: "No rows to import"}, nil
	}

	var (
		result *entity.ImportResult
		err    error
	)
	if req.Table == entity.TableLessonSchedules {
		result, err = s.reconciler.ReconcileRows(ctx, req.Rows)
	} else {
		result, err = s.importGeneric(ctx, req.Table, req.Rows)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateIfCatalog(ctx, req.Table)
	return result, nil
}

// importGeneric upserts rows one at a time so a single bad row cannot sink
// the whole batch.
func (s *sheetsService) importGeneric(ctx context.Context, table string, rows []map[string]any) (*entity.ImportResult, error) {
	result := &entity.ImportResult{Success: true}

	for i, row := range rows {
		if err := s.sheetsRepo.UpsertRow(ctx, table, row); err != nil {
			if errors.Is(err, entity.ErrUnknownTable) {
				return nil, fmt.Errorf("%w: %s", entity.ErrUnknownTable, table)
			}
			s.logger.WithFields(logrus.Fields{
				"table": table,
				"index": i,
			}).WithError(err).Error("failed to upsert sheet row")
			result.Skipped = append(result.Skipped, entity.SkippedRow{Index: i, Reason: err.Error()})
			continue
		}
		result.Count++
	}

	return result, nil
}

// ExportAll dumps every synced table. Tables are exported independently so
// one failing table does not break the whole export.
func (s *sheetsService) ExportAll(ctx context.Context) (map[string][]map[string]any, error) {
	tables := []string{
		entity.TableCourses,
		entity.TableEbooks,
		entity.TableRooms,
		entity.TableRoomBookings,
		entity.TableCourseEnrollments,
		entity.TableLessonCompletions,
		entity.TableLessonSchedules,
		entity.TableUsers,
		entity.TableUserProfiles,
	}

	out := make(map[string][]map[string]any, len(tables))
	for _, table := range tables {
		rows, err := s.sheetsRepo.SelectAll(ctx, table)
		if err != nil {
			s.logger.WithField("table", table).WithError(err).Error("failed to export table")
			rows = []map[string]any{}
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		out[table] = rows
	}

	return out, nil
}

func (s *sheetsService) invalidateIfCatalog(ctx context.Context, table string) {
	if s.cache == nil {
		return
	}
	switch table {
	case entity.TableCourses, entity.TableEbooks, entity.TableUsers:
		if err := s.cache.InvalidateCatalogs(ctx); err != nil {
			s.logger.WithField("table", table).WithError(err).Warn("failed to invalidate catalog cache")
		}
	}
}
