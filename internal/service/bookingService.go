package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
)

type bookingService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.RoomBookingRepository
	userRepo    repository.UserRepository
	logger      *logrus.Logger
	now         func() time.Time
}

func NewBookingService(
	roomRepo repository.RoomRepository,
	bookingRepo repository.RoomBookingRepository,
	userRepo repository.UserRepository,
	logger *logrus.Logger,
) *bookingService {
	return &bookingService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *bookingService) ListRooms(ctx context.Context) ([]*entity.Room, error) {
	return s.roomRepo.GetAllActive(ctx)
}

// BookRoom reserves a practice room. The slot must not overlap any confirmed
// booking for the same room; two slots overlap when one starts before the
// other ends on both sides.
func (s *bookingService) BookRoom(ctx context.Context, req *BookRoomRequest) (*entity.RoomBooking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, entity.ErrBookingTimeSpan
	}

	if _, err := s.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	overlaps, err := s.bookingRepo.HasOverlap(ctx, req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	if overlaps {
		return nil, entity.ErrBookingOverlap
	}

	booking := &entity.RoomBooking{
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    entity.RoomBookingStatusConfirmed,
		Notes:     req.Notes,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// CancelBooking cancels a confirmed booking. Only the owner or an admin may
// cancel, and cancelling twice is an error.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Role != entity.RoleAdmin {
			return entity.ErrForbidden
		}
	}

	if booking.Status == entity.RoomBookingStatusCancelled {
		return fmt.Errorf("%w: booking is already cancelled", entity.ErrInvalidInput)
	}

	return s.bookingRepo.UpdateStatus(ctx, bookingID, entity.RoomBookingStatusCancelled)
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID int64) ([]*entity.RoomBookingDetails, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// CompletePastBookings flips confirmed bookings whose slot has ended to
// completed. Runs periodically from the background sweeper.
func (s *bookingService) CompletePastBookings(ctx context.Context) error {
	n, err := s.bookingRepo.CompletePast(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to complete past bookings: %w", err)
	}
	if n > 0 {
		s.logger.WithField("count", n).Info("marked past room bookings completed")
	}
	return nil
}
