package services

import (
	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/pkg/apperrors"
)

type UserService interface {
	GetMe(userID string) (*dto.MeResponse, error)
	UpdateProfile(userID, nickname string) error
	UpdateConsent(userID string, consent bool) error
	DeleteMe(userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetMe(userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return &dto.MeResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		PlanTier: string(user.PlanTier),
		Consent:  user.Consent,
	}, nil
}

func (s *userService) UpdateProfile(userID, nickname string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	user.Nickname = nickname
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) UpdateConsent(userID string, consent bool) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	user.Consent = consent
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) DeleteMe(userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return apperrors.ErrNotFound(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
