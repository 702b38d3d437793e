package service

import (
	"context"
	"fmt"
	"strings"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"
)

type instructorService struct {
	userRepo repository.UserRepository
}

func NewInstructorService(userRepo repository.UserRepository) InstructorService {
	return &instructorService{userRepo: userRepo}
}

// ListInstructors returns the public roster with a click-to-chat link built
// from each instructor's WhatsApp number.
func (s *instructorService) ListInstructors(ctx context.Context) ([]*entity.Instructor, error) {
	users, err := s.userRepo.ListByRole(ctx, entity.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}

	instructors := make([]*entity.Instructor, 0, len(users))
	for _, u := range users {
		instructors = append(instructors, &entity.Instructor{
			ID:             u.ID,
			DisplayName:    u.DisplayName,
			Email:          u.Email,
			AvatarURL:      u.AvatarURL,
			WhatsAppNumber: u.WhatsAppNumber,
			WhatsAppLink:   whatsAppLink(u.WhatsAppNumber),
		})
	}

	return instructors, nil
}

// whatsAppLink builds a wa.me URL from a phone number, keeping digits only.
func whatsAppLink(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
