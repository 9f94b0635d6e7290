package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"evervoice_backend/internal/clients"
	"evervoice_backend/internal/dto"
	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/internal/storage"
	"evervoice_backend/internal/validator"
	"evervoice_backend/pkg/apperrors"
	"gorm.io/datatypes"
)

// VideoService orchestrates the generation pipeline
// (synthesize -> upload -> submit -> record) and reconciles provider
// status on poll. The pipeline is the same for both avatar providers; the
// provider is an injected capability.
type VideoService interface {
	// Generate runs the full pipeline from text. Returns immediately with
	// the job id; generation is asynchronous and observed via Status.
	Generate(ctx context.Context, userID, text string) (*dto.GenerateVideoResponse, error)

	// GenerateFromAudio skips synthesis and upload for callers that
	// already produced audio through the voice flow.
	GenerateFromAudio(ctx context.Context, userID, audioURL string) (*dto.GenerateVideoResponse, error)

	UploadPhoto(ctx context.Context, userID string, image []byte, contentType, filename string) (*dto.UploadPhotoResponse, error)

	// Status polls the provider, persists any transition, and marks the
	// interval ledger on the first DONE observation.
	Status(ctx context.Context, userID, jobID string) (*dto.VideoStatusResponse, error)
}

type videoService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	jobRepo     repositories.JobRepository
	quota       QuotaService
	speech      clients.SpeechSynthesizer
	avatar      clients.AvatarProvider
	store       storage.Storage
	timeout     time.Duration
	urlExpiry   time.Duration
}

func NewVideoService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	jobRepo repositories.JobRepository,
	quota QuotaService,
	speech clients.SpeechSynthesizer,
	avatar clients.AvatarProvider,
	store storage.Storage,
	timeout time.Duration,
	urlExpiry time.Duration,
) VideoService {
	return &videoService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		quota:       quota,
		speech:      speech,
		avatar:      avatar,
		store:       store,
		timeout:     timeout,
		urlExpiry:   urlExpiry,
	}
}

func (s *videoService) Generate(ctx context.Context, userID, text string) (*dto.GenerateVideoResponse, error) {
	user, profile, err := s.precheck(userID)
	if err != nil {
		return nil, err
	}

	if !validator.ValidGenerationText(text, validator.MaxGenerationChars) {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("text must be 1-%d Korean characters, whitespace and emoji excluded", validator.MaxGenerationChars))
	}

	// Synthesis and upload happen before any job record exists: a failure
	// here leaves no orphan row.
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

	return s.submit(ctx, user, profile, audioURL)
}

func (s *videoService) GenerateFromAudio(ctx context.Context, userID, audioURL string) (*dto.GenerateVideoResponse, error) {
	user, profile, err := s.precheck(userID)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, user, profile, audioURL)
}

// precheck resolves the user and profile and enforces the submission
// preconditions shared by both entry points: complete profile, then the
// plan's video interval. Nothing external is called before these pass.
func (s *videoService) precheck(userID string) (*models.User, *models.MemoryProfile, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err == repositories.ErrProfileNotFound {
			return nil, nil, apperrors.ErrPreconditionMissing("video", "No memory profile yet; create one first")
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if !profile.ReadyForVideo() {
		return nil, nil, apperrors.ErrPreconditionMissing("video",
			"Profile is missing a voice clone or a photo; register a sample and a photo first")
	}

	remain, err := s.quota.CheckVideoInterval(user)
	if err != nil {
		return nil, nil, err
	}
	if remain > 0 {
		limits := models.LimitsFor(user.PlanTier)
		return nil, nil, apperrors.ErrQuotaExceeded(
			"video",
			fmt.Sprintf("%d day(s) left until the next video generation (plan: %s)", remain, limits.Tier),
			map[string]interface{}{
				"daysRemaining": remain,
				"plan":          limits.Tier,
			},
		)
	}

	return user, profile, nil
}

func (s *videoService) submit(ctx context.Context, user *models.User, profile *models.MemoryProfile, audioURL string) (*dto.GenerateVideoResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.avatar.Submit(callCtx, clients.SubmitInput{
		PhotoURL: profile.PhotoURL,
		AudioURL: audioURL,
		Title:    "EverVoice",
	})
	if err != nil {
		return nil, err
	}

	job := &models.VideoJob{
		UserID:        user.ID,
		ProviderJobID: res.ProviderJobID,
		Provider:      s.avatar.Name(),
		Status:        clients.MapProviderStatus(res.NativeStatus),
		PhotoURL:      profile.PhotoURL,
		AudioURL:      audioURL,
		ProviderMeta:  datatypes.JSON(res.Raw),
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.GenerateVideoResponse{
		JobID:  job.ProviderJobID,
		Status: string(job.Status),
	}, nil
}

func (s *videoService) UploadPhoto(ctx context.Context, userID string, image []byte, contentType, filename string) (*dto.UploadPhotoResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if len(image) == 0 {
		return nil, apperrors.NewBadRequestError("A portrait photo file is required")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewBadRequestError("Only image files can be uploaded")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := fmt.Sprintf("photos/%s/%s.%s", user.ID, time.Now().Format("20060102150405"), guessExt(contentType, filename))
	if err := s.store.Save(callCtx, key, bytes.NewReader(image), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}
	photoURL, err := s.store.GetSignedURL(callCtx, key, s.urlExpiry)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if err != repositories.ErrProfileNotFound {
			return nil, apperrors.InternalError(err)
		}
		profile = &models.MemoryProfile{UserID: userID}
	}
	profile.PhotoURL = photoURL

	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UploadPhotoResponse{PhotoURL: photoURL}, nil
}

func (s *videoService) Status(ctx context.Context, userID, jobID string) (*dto.VideoStatusResponse, error) {
	job, err := s.jobRepo.FindByProviderJobID(jobID, userID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// A terminal job never changes again; the stored status and result
	// URL are authoritative, so a provider outage cannot fail the poll.
	if job.Status.Terminal() {
		resultURL := ""
		if job.Status == models.JobStatusDone {
			resultURL = job.ResultURL
		}
		return &dto.VideoStatusResponse{
			Status:   string(job.Status),
			VideoURL: resultURL,
		}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	st, err := s.avatar.QueryStatus(callCtx, job.ProviderJobID)
	if err != nil {
		return nil, err
	}

	mapped := clients.MapProviderStatus(st.NativeStatus)

	resultURL := ""
	if mapped == models.JobStatusDone {
		resultURL = st.ResultURL
		if resultURL == "" {
			resultURL = job.ResultURL
		}
	}

	// The job was non-terminal above, so DONE here is its first observation.
	firstDone := mapped == models.JobStatusDone

	// Re-polling an unchanged job is a no-op, not an error.
	if job.Status != mapped || job.ResultURL != resultURL {
		if err := s.jobRepo.UpdateStatus(job.ID, mapped, resultURL); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	// The interval ledger moves exactly once per job, at the first DONE.
	if firstDone {
		if err := s.quota.MarkVideoSuccess(userID); err != nil {
			return nil, err
		}
	}

	return &dto.VideoStatusResponse{
		Status:   string(mapped),
		VideoURL: resultURL,
	}, nil
}

func guessExt(contentType, filename string) string {
	if strings.Contains(contentType, "png") {
		return "png"
	}
	if strings.Contains(contentType, "webp") {
		return "webp"
	}
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".png") {
		return "png"
	}
	if strings.HasSuffix(lower, ".webp") {
		return "webp"
	}
	return "jpg"
}
