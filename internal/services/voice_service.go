package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"evervoice_backend/internal/clients"
	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/internal/storage"
	"evervoice_backend/internal/validator"
	"evervoice_backend/pkg/apperrors"
)

type VoiceService interface {
	// UploadSample registers a voice sample with the speech provider and
	// stores the resulting clone id on the memory profile.
	UploadSample(ctx context.Context, userID string, sample []byte, filename string) (*dto.UploadSampleResponse, error)

	// GenerateAudio synthesizes speech from text with the user's cloned
	// voice and returns a time-limited audio URL.
	GenerateAudio(ctx context.Context, userID, text string) (*dto.AudioResponse, error)

	ListSamples(userID string) ([]dto.VoiceSample, error)
}

type voiceService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	speech      clients.SpeechSynthesizer
	store       storage.Storage
	timeout     time.Duration
	urlExpiry   time.Duration
}

func NewVoiceService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	speech clients.SpeechSynthesizer,
	store storage.Storage,
	timeout time.Duration,
	urlExpiry time.Duration,
) VoiceService {
	return &voiceService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		speech:      speech,
		store:       store,
		timeout:     timeout,
		urlExpiry:   urlExpiry,
	}
}

func (s *voiceService) UploadSample(ctx context.Context, userID string, sample []byte, filename string) (*dto.UploadSampleResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if len(sample) == 0 {
		return nil, apperrors.NewBadRequestError("A voice sample file is required")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	voiceID, err := s.speech.CreateVoice(callCtx, userID, sample, filename)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err != repositories.ErrProfileNotFound {
			return nil, apperrors.InternalError(err)
		}
		profile = &models.MemoryProfile{UserID: userID}
	}
	profile.VoiceCloneID = voiceID

	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UploadSampleResponse{VoiceID: voiceID}, nil
}

func (s *voiceService) GenerateAudio(ctx context.Context, userID, text string) (*dto.AudioResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, apperrors.ErrPreconditionMissing("voice", "No memory profile yet; create one first")
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.VoiceCloneID == "" {
		return nil, apperrors.ErrPreconditionMissing("voice", "No voice clone yet; upload a voice sample first")
	}

	if !validator.ValidGenerationText(text, validator.MaxGenerationChars) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("text must be 1-%d Korean characters, whitespace and emoji excluded", validator.MaxGenerationChars))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.speech.TTS(callCtx, profile.VoiceCloneID, text)
	if err != nil {
		return nil, err
	}

	key := audioKey(user.ID)
	if err := s.store.Save(callCtx, key, bytes.NewReader(audio), "audio/mpeg"); err != nil {
		return nil, apperrors.InternalError(err)
	}

	audioURL, err := s.store.GetSignedURL(callCtx, key, s.urlExpiry)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AudioResponse{AudioURL: audioURL}, nil
}

func (s *voiceService) ListSamples(userID string) ([]dto.VoiceSample, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return []dto.VoiceSample{}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.VoiceCloneID == "" {
		return []dto.VoiceSample{}, nil
	}

	return []dto.VoiceSample{{
		SampleID: "sample-" + profile.VoiceCloneID,
		URL:      "https://example.com/voices/" + profile.VoiceCloneID + "/sample",
	}}, nil
}

// audioKey builds the per-user, timestamped object key for generated audio.
func audioKey(userID string) string {
	return fmt.Sprintf("voices/%s/%s.mp3", userID, time.Now().Format("20060102150405"))
}
