package service

import (
	"context"
	"testing"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepo struct {
	rooms map[int64]*entity.Room
}

func (r *fakeRoomRepo) GetAllActive(_ context.Context) ([]*entity.Room, error) {
	out := make([]*entity.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id int64) (*entity.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, entity.ErrRoomNotFound
	}
	return room, nil
}

type fakeBookingRepo struct {
	bookings   map[int64]*entity.RoomBooking
	nextID     int64
	lastStatus entity.RoomBookingStatus
	completed  int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*entity.RoomBooking), nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.RoomBooking) error {
	booking.ID = r.nextID
	r.nextID++
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*entity.RoomBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) HasOverlap(_ context.Context, roomID int64, start, end time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.RoomID != roomID || b.Status != entity.RoomBookingStatusConfirmed {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status entity.RoomBookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	r.lastStatus = status
	return nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, _ int64) ([]*entity.RoomBookingDetails, error) {
	return nil, nil
}

func (r *fakeBookingRepo) CompletePast(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == entity.RoomBookingStatusConfirmed && b.EndTime.Before(before) {
			b.Status = entity.RoomBookingStatusCompleted
			n++
		}
	}
	r.completed = n
	return n, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newTestBookingService(rooms *fakeRoomRepo, bookings *fakeBookingRepo, users *fakeUserRepo) *bookingService {
	s := NewBookingService(rooms, bookings, users, testLogger())
	s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestBookRoom(t *testing.T) {
	base := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	rooms := &fakeRoomRepo{rooms: map[int64]*entity.Room{1: {ID: 1, Name: "Studio A", IsActive: true}}}

	tests := []struct {
		name     string
		existing *entity.RoomBooking
		req      *BookRoomRequest
		wantErr  error
	}{
		{
			name: "success",
			req:  &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base.Add(time.Hour)},
		},
		{
			name:    "end before start",
			req:     &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base.Add(-time.Hour)},
			wantErr: entity.ErrBookingTimeSpan,
		},
		{
			name:    "zero duration",
			req:     &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base},
			wantErr: entity.ErrBookingTimeSpan,
		},
		{
			name:    "unknown room",
			req:     &BookRoomRequest{UserID: 42, RoomID: 9, StartTime: base, EndTime: base.Add(time.Hour)},
			wantErr: entity.ErrRoomNotFound,
		},
		{
			name: "overlapping confirmed booking",
			existing: &entity.RoomBooking{
				RoomID: 1, UserID: 7, Status: entity.RoomBookingStatusConfirmed,
				StartTime: base.Add(30 * time.Minute), EndTime: base.Add(90 * time.Minute),
			},
			req:     &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base.Add(time.Hour)},
			wantErr: entity.ErrBookingOverlap,
		},
		{
			name: "adjacent slot does not overlap",
			existing: &entity.RoomBooking{
				RoomID: 1, UserID: 7, Status: entity.RoomBookingStatusConfirmed,
				StartTime: base.Add(-time.Hour), EndTime: base,
			},
			req: &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base.Add(time.Hour)},
		},
		{
			name: "cancelled booking does not block",
			existing: &entity.RoomBooking{
				RoomID: 1, UserID: 7, Status: entity.RoomBookingStatusCancelled,
				StartTime: base, EndTime: base.Add(time.Hour),
			},
			req: &BookRoomRequest{UserID: 42, RoomID: 1, StartTime: base, EndTime: base.Add(time.Hour)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := newFakeBookingRepo()
			if tt.existing != nil {
				require.NoError(t, bookings.Create(context.Background(), tt.existing))
			}
			s := newTestBookingService(rooms, bookings, &fakeUserRepo{})

			booking, err := s.BookRoom(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, entity.RoomBookingStatusConfirmed, booking.Status)
			assert.NotZero(t, booking.ID)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	base := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	users := &fakeUserRepo{users: map[int64]*entity.User{
		1: {ID: 1, Role: entity.RoleAdmin},
		7: {ID: 7, Role: entity.RoleStudent},
	}}

	setup := func() (*bookingService, *fakeBookingRepo, int64) {
		bookings := newFakeBookingRepo()
		b := &entity.RoomBooking{
			RoomID: 1, UserID: 42, Status: entity.RoomBookingStatusConfirmed,
			StartTime: base, EndTime: base.Add(time.Hour),
		}
		require.NoError(t, bookings.Create(context.Background(), b))
		s := newTestBookingService(&fakeRoomRepo{}, bookings, users)
		return s, bookings, b.ID
	}

	t.Run("owner can cancel", func(t *testing.T) {
		s, bookings, id := setup()
		require.NoError(t, s.CancelBooking(context.Background(), 42, id))
		assert.Equal(t, entity.RoomBookingStatusCancelled, bookings.lastStatus)
	})

	t.Run("admin can cancel someone else's booking", func(t *testing.T) {
		s, bookings, id := setup()
		require.NoError(t, s.CancelBooking(context.Background(), 1, id))
		assert.Equal(t, entity.RoomBookingStatusCancelled, bookings.lastStatus)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		s, _, id := setup()
		assert.ErrorIs(t, s.CancelBooking(context.Background(), 7, id), entity.ErrForbidden)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		s, _, id := setup()
		require.NoError(t, s.CancelBooking(context.Background(), 42, id))
		assert.ErrorIs(t, s.CancelBooking(context.Background(), 42, id), entity.ErrInvalidInput)
	})

	t.Run("unknown booking", func(t *testing.T) {
		s, _, _ := setup()
		assert.ErrorIs(t, s.CancelBooking(context.Background(), 42, 999), entity.ErrBookingNotFound)
	})
}

func TestCompletePastBookings(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	bookings := newFakeBookingRepo()

	past := &entity.RoomBooking{
		RoomID: 1, UserID: 42, Status: entity.RoomBookingStatusConfirmed,
		StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour),
	}
	future := &entity.RoomBooking{
		RoomID: 1, UserID: 42, Status: entity.RoomBookingStatusConfirmed,
		StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour),
	}
	require.NoError(t, bookings.Create(context.Background(), past))
	require.NoError(t, bookings.Create(context.Background(), future))

	s := newTestBookingService(&fakeRoomRepo{}, bookings, &fakeUserRepo{})
	require.NoError(t, s.CompletePastBookings(context.Background()))

	assert.Equal(t, int64(1), bookings.completed)
	assert.Equal(t, entity.RoomBookingStatusCompleted, bookings.bookings[past.ID].Status)
	assert.Equal(t, entity.RoomBookingStatusConfirmed, bookings.bookings[future.ID].Status)
}
