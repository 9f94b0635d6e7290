package services

import (
	"fmt"
	"time"

	"evervoice_backend/internal/models"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/pkg/apperrors"
)

// QuotaService is the usage ledger. It answers "is this request within
// budget" and records consumption. Check and commit are separate calls so
// a failed downstream generation is never charged.
type QuotaService interface {
	// CheckChatQuota verifies that inputChars more characters fit in
	// today's budget for the user's tier. Returns the remaining budget
	// before consumption; fails with QuotaExceeded without mutating state.
	CheckChatQuota(user *models.User, inputChars int) (int, error)

	// CommitChat increments today's counter and returns the new remaining
	// budget. Call only after the downstream step succeeded. The increment
	// is budget-conditional, so a concurrent send that drained the budget
	// between check and commit surfaces here as QuotaExceeded.
	CommitChat(user *models.User, inputChars int) (int, error)

	// RemainingChat returns (remaining, planLimit) for today.
	RemainingChat(user *models.User) (int, int, error)

	// CheckVideoInterval returns 0 when a video generation is allowed,
	// else the number of days the user still has to wait.
	CheckVideoInterval(user *models.User) (int, error)

	// MarkVideoSuccess records "now" as the user's last successful
	// generation. Called exactly once per job, on the first DONE.
	MarkVideoSuccess(userID string) error
}

type quotaService struct {
	usageRepo repositories.UsageRepository
	now       func() time.Time
}

func NewQuotaService(usageRepo repositories.UsageRepository) QuotaService {
	return &quotaService{
		usageRepo: usageRepo,
		now:       time.Now,
	}
}

func (s *quotaService) CheckChatQuota(user *models.User, inputChars int) (int, error) {
	limits := models.LimitsFor(user.PlanTier)

	used, err := s.usageRepo.GetUsedChars(user.ID, s.now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	remaining := limits.DailyChatChars - used
	if remaining < 0 {
		remaining = 0
	}
	if used+inputChars > limits.DailyChatChars {
		return remaining, apperrors.ErrQuotaExceeded(
			"chat",
			fmt.Sprintf("Daily character limit exceeded (remaining: %d, plan: %s)", remaining, limits.Tier),
			map[string]interface{}{
				"remainingCharsToday": remaining,
				"planLimit":           limits.DailyChatChars,
				"plan":                limits.Tier,
			},
		)
	}
	return remaining, nil
}

func (s *quotaService) CommitChat(user *models.User, inputChars int) (int, error) {
	limits := models.LimitsFor(user.PlanTier)

	used, err := s.usageRepo.AddUsedChars(user.ID, s.now(), inputChars, limits.DailyChatChars)
	if err != nil {
		if err == repositories.ErrDailyBudgetExceeded {
			remaining, _, rerr := s.RemainingChat(user)
			if rerr != nil {
				return 0, rerr
			}
			return remaining, apperrors.ErrQuotaExceeded(
				"chat",
				fmt.Sprintf("Daily character limit exceeded (remaining: %d, plan: %s)", remaining, limits.Tier),
				map[string]interface{}{
					"remainingCharsToday": remaining,
					"planLimit":           limits.DailyChatChars,
					"plan":                limits.Tier,
				},
			)
		}
		return 0, apperrors.InternalError(err)
	}

	remaining := limits.DailyChatChars - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *quotaService) RemainingChat(user *models.User) (int, int, error) {
	limits := models.LimitsFor(user.PlanTier)

	used, err := s.usageRepo.GetUsedChars(user.ID, s.now())
	if err != nil {
		return 0, 0, apperrors.InternalError(err)
	}

	remaining := limits.DailyChatChars - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, limits.DailyChatChars, nil
}

func (s *quotaService) CheckVideoInterval(user *models.User) (int, error) {
	limits := models.LimitsFor(user.PlanTier)

	mark, err := s.usageRepo.FindLastGenerated(user.ID)
	if err != nil {
		if err == repositories.ErrNoGenerationMark {
			return 0, nil
		}
		return 0, apperrors.InternalError(err)
	}

	elapsedDays := int(s.now().Sub(mark.LastGeneratedAt).Hours() / 24)
	remain := limits.VideoIntervalDays - elapsedDays
	if remain < 0 {
		remain = 0
	}
	return remain, nil
}

func (s *quotaService) MarkVideoSuccess(userID string) error {
	if err := s.usageRepo.UpsertLastGenerated(userID, s.now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
