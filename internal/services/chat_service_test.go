package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"evervoice_backend/internal/models"
	"evervoice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(usage *mockUsageRepo, llm *mockLLM, profiles ...*models.MemoryProfile) ChatService {
	return NewChatService(
		newMockUserRepo(freeUser()),
		newMockProfileRepo(profiles...),
		fixedQuota(usage, testDay),
		llm,
		5*time.Second,
	)
}

func TestChatSend_WithinQuota(t *testing.T) {
	usage := newMockUsageRepo()
	llm := &mockLLM{reply: "보고 싶었어."}
	svc := newChatFixture(usage, llm)

	// Exactly 100 countable characters on the FREE plan.
	text := strings.Repeat("가", 100)
	res, err := svc.Send(context.Background(), "user-1", text)
	require.NoError(t, err)
	assert.Equal(t, "보고 싶었어.", res.Reply)
	assert.Zero(t, res.RemainingCharsToday)
	assert.Equal(t, 1, llm.calls)
}

func TestChatSend_OneOverQuota(t *testing.T) {
	usage := newMockUsageRepo()
	llm := &mockLLM{reply: "nope"}
	svc := newChatFixture(usage, llm)

	_, err := svc.Send(context.Background(), "user-1", strings.Repeat("가", 101))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeQuotaExceeded, apperrors.CodeOf(err))

	// The model is never called for a rejected message, and nothing is
	// charged.
	assert.Zero(t, llm.calls)
	used, _ := usage.GetUsedChars("user-1", testDay)
	assert.Zero(t, used)
}

func TestChatSend_WhitespaceNotCounted(t *testing.T) {
	usage := newMockUsageRepo()
	svc := newChatFixture(usage, &mockLLM{reply: "ok"})

	// 100 characters padded with spaces still fits.
	padded := strings.Repeat("가 ", 100)
	res, err := svc.Send(context.Background(), "user-1", padded)
	require.NoError(t, err)
	assert.Zero(t, res.RemainingCharsToday)
}

func TestChatSend_LLMFailureNotCharged(t *testing.T) {
	usage := newMockUsageRepo()
	llm := &mockLLM{err: apperrors.ErrProvider(errors.New("boom"), "openai", "chat completion failed", 500, "")}
	svc := newChatFixture(usage, llm)

	_, err := svc.Send(context.Background(), "user-1", "안녕하세요")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProviderError, apperrors.CodeOf(err))

	used, _ := usage.GetUsedChars("user-1", testDay)
	assert.Zero(t, used)
}

func TestChatSend_AccumulatesAcrossMessages(t *testing.T) {
	usage := newMockUsageRepo()
	svc := newChatFixture(usage, &mockLLM{reply: "ok"})

	first, err := svc.Send(context.Background(), "user-1", strings.Repeat("가", 60))
	require.NoError(t, err)
	assert.Equal(t, 40, first.RemainingCharsToday)

	// 41 more would exceed; 40 exactly drains the budget.
	_, err = svc.Send(context.Background(), "user-1", strings.Repeat("가", 41))
	require.Error(t, err)

	second, err := svc.Send(context.Background(), "user-1", strings.Repeat("가", 40))
	require.NoError(t, err)
	assert.Zero(t, second.RemainingCharsToday)
}

func TestChatQuota(t *testing.T) {
	usage := newMockUsageRepo()
	usage.used[usageKey("user-1", testDay)] = 30
	svc := newChatFixture(usage, &mockLLM{})

	res, err := svc.Quota("user-1")
	require.NoError(t, err)
	assert.Equal(t, 70, res.RemainingCharsToday)
	assert.Equal(t, 100, res.PlanLimit)
}

func TestChatQuota_UnknownUser(t *testing.T) {
	svc := newChatFixture(newMockUsageRepo(), &mockLLM{})

	_, err := svc.Quota("nobody")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestUpsertProfile_CreatesLazily(t *testing.T) {
	profiles := newMockProfileRepo()
	svc := NewChatService(
		newMockUserRepo(freeUser()),
		profiles,
		fixedQuota(newMockUsageRepo(), testDay),
		&mockLLM{},
		5*time.Second,
	)

	res, err := svc.UpsertProfile("user-1", "할머니", "따뜻하고 잔잔한 말투")
	require.NoError(t, err)
	assert.Equal(t, "할머니", res.DisplayName)

	stored := profiles.profiles["user-1"]
	require.NotNil(t, stored)
	assert.Equal(t, "따뜻하고 잔잔한 말투", stored.PersonalityPrompt)
}

func TestUpsertProfile_KeepsVoiceAndPhoto(t *testing.T) {
	existing := &models.MemoryProfile{
		UserID:       "user-1",
		VoiceCloneID: "voice-9",
		PhotoURL:     "https://files.test/photo.jpg",
	}
	profiles := newMockProfileRepo(existing)
	svc := NewChatService(
		newMockUserRepo(freeUser()),
		profiles,
		fixedQuota(newMockUsageRepo(), testDay),
		&mockLLM{},
		5*time.Second,
	)

	_, err := svc.UpsertProfile("user-1", "할머니", "persona")
	require.NoError(t, err)

	stored := profiles.profiles["user-1"]
	assert.Equal(t, "voice-9", stored.VoiceCloneID)
	assert.Equal(t, "https://files.test/photo.jpg", stored.PhotoURL)
	assert.Equal(t, "할머니", stored.DisplayName)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(&models.MemoryProfile{
		DisplayName:       "할머니",
		PersonalityPrompt: "따뜻한 말투",
	})
	assert.Contains(t, prompt, "할머니")
	assert.Contains(t, prompt, "따뜻한 말투")

	// Missing profile falls back to the neutral persona.
	fallback := buildSystemPrompt(nil)
	assert.Contains(t, fallback, "고인")
	assert.Contains(t, fallback, "설정 없음")
}
