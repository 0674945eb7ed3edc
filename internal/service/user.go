package service

import (
	"context"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserAccount, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile patches the non-empty fields. The read-modify-write this
// replaced could erase a reservation committed in between; the repository
// writes the profile fields alone, atomically.
func (s *userService) UpdateProfile(ctx context.Context, userID, firstName, lastName, email string) (*domain.UserAccount, error) {
	return s.userRepo.UpdateProfile(ctx, userID, firstName, lastName, email)
}
