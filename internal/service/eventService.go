package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"
)

type eventService struct {
	eventRepo repository.EventRepository
	now       func() time.Time
}

func NewEventService(eventRepo repository.EventRepository) *eventService {
	return &eventService{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// UpcomingEvents lists active events that have not started yet, soonest
// first. An empty school calendar is an empty list, not an error.
func (s *eventService) UpcomingEvents(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	if events == nil {
		events = []*entity.Event{}
	}
	return events, nil
}
