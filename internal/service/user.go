package service

import (
	"context"
	"log"

	"corrigeaqui/internal/model"
	"corrigeaqui/internal/repository"
)

// UserService handles profile reads and updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns a user's profile.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Patch updates the caller's own profile fields.
func (s *UserService) Patch(ctx context.Context, userID int64, req model.PatchUserRequest) (*model.User, error) {
	updated, err := s.userRepo.Patch(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[UserService] User %d updated profile", userID)
	return updated, nil
}
