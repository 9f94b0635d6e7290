package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"evervoice_backend/internal/clients"
	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/internal/validator"
	"evervoice_backend/pkg/apperrors"
)

type ChatService interface {
	UpsertProfile(userID, displayName, personalityPrompt string) (*dto.UpsertProfileResponse, error)
	GetProfile(userID string) (*dto.ProfileResponse, error)
	Send(ctx context.Context, userID, text string) (*dto.ChatSendResponse, error)
	Quota(userID string) (*dto.ChatQuotaResponse, error)
}

type chatService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	quota       QuotaService
	llm         clients.ChatCompleter
	timeout     time.Duration
}

func NewChatService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	quota QuotaService,
	llm clients.ChatCompleter,
	timeout time.Duration,
) ChatService {
	return &chatService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		quota:       quota,
		llm:         llm,
		timeout:     timeout,
	}
}

func (s *chatService) UpsertProfile(userID, displayName, personalityPrompt string) (*dto.UpsertProfileResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err != repositories.ErrProfileNotFound {
			return nil, apperrors.InternalError(err)
		}
		profile = &models.MemoryProfile{UserID: userID}
	}
	profile.DisplayName = displayName
	profile.PersonalityPrompt = personalityPrompt

	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UpsertProfileResponse{
		DisplayName:       profile.DisplayName,
		PersonalityPrompt: profile.PersonalityPrompt,
	}, nil
}

func (s *chatService) GetProfile(userID string) (*dto.ProfileResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.ProfileResponse{
		ProfileID:         profile.ID,
		DisplayName:       profile.DisplayName,
		PersonalityPrompt: profile.PersonalityPrompt,
		PhotoURL:          profile.PhotoURL,
		VoiceCloneID:      profile.VoiceCloneID,
	}, nil
}

// Send runs the chat flow: quota check, LLM call, quota commit. The commit
// happens only after the LLM call succeeded, so a failed generation is
// never charged against the daily budget.
func (s *chatService) Send(ctx context.Context, userID, text string) (*dto.ChatSendResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	inputChars := validator.CountChars(text)
	if _, err := s.quota.CheckChatQuota(user, inputChars); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil && err != repositories.ErrProfileNotFound {
		return nil, apperrors.InternalError(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.llm.Chat(callCtx, buildSystemPrompt(profile), text)
	if err != nil {
		return nil, err
	}

	remaining, err := s.quota.CommitChat(user, inputChars)
	if err != nil {
		return nil, err
	}

	return &dto.ChatSendResponse{
		Reply:               reply,
		RemainingCharsToday: remaining,
	}, nil
}

func (s *chatService) Quota(userID string) (*dto.ChatQuotaResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	remaining, limit, err := s.quota.RemainingChat(user)
	if err != nil {
		return nil, err
	}

	return &dto.ChatQuotaResponse{
		RemainingCharsToday: remaining,
		PlanLimit:           limit,
	}, nil
}

// buildSystemPrompt composes the persona instruction from the memory
// profile. A missing profile falls back to a neutral persona.
func buildSystemPrompt(profile *models.MemoryProfile) string {
	name := "고인"
	persona := "설정 없음"
	if profile != nil {
		if n := strings.TrimSpace(profile.DisplayName); n != "" {
			name = n
		}
		if p := strings.TrimSpace(profile.PersonalityPrompt); p != "" {
			persona = p
		}
	}
	return fmt.Sprintf(`당신은 '%s'의 말투와 성격을 반영해 대화합니다.
- 인격 설명: %s
- 사용자에게 위로와 공감을 우선합니다.
- 과장 없이 담백하고 진심 어린 어조를 유지합니다.
`, name, persona)
}
