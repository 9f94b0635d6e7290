package services

import (
	"evervoice_backend/internal/auth"
	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/pkg/apperrors"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) error
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(refreshToken string) (*dto.TokenResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Signup(req *dto.SignupRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if exists {
		return apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		AuthProvider: models.AuthProviderLocal,
		Role:         models.UserRoleUser,
		PlanTier:     models.PlanFree,
	}
	if err := s.userRepo.Create(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(refreshToken string) (*dto.TokenResponse, error) {
	claims, err := auth.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.FindByID(claims.Subject)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Unknown user")
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	access, err := auth.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
