// Package clients contains thin HTTP clients for the external providers:
// ElevenLabs (speech), OpenAI (chat) and the avatar video providers
// (D-ID, HeyGen). Clients return apperrors values so callers can tell a
// provider outage from a broken response shape.
package clients

import (
	"context"
	"strings"

	"evervoice_backend/internal/logger"
	"evervoice_backend/internal/models"
)

// SubmitInput carries everything an avatar provider needs to start a job.
type SubmitInput struct {
	PhotoURL string
	AudioURL string
	Width    int
	Height   int
	Title    string
}

// SubmitResult is the provider's answer to a submission.
type SubmitResult struct {
	ProviderJobID string
	NativeStatus  string // provider vocabulary, unmapped
	Raw           []byte // response body snapshot, for the job record
}

// StatusResult is the provider's answer to a status query.
type StatusResult struct {
	NativeStatus string
	ResultURL    string // only trusted when the mapped status is DONE
}

// AvatarProvider is the capability both video providers implement.
type AvatarProvider interface {
	Name() string
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	QueryStatus(ctx context.Context, providerJobID string) (*StatusResult, error)
}

// MapProviderStatus reconciles a provider-native status token into the
// internal vocabulary. Unrecognized or empty tokens degrade to PENDING so
// a provider that renames a status makes jobs look "still waiting" rather
// than failing them; the raw token is logged for observability.
func MapProviderStatus(native string) models.JobStatus {
	switch strings.ToLower(strings.TrimSpace(native)) {
	case "created":
		return models.JobStatusPending
	case "started", "processing", "in_progress":
		return models.JobStatusProcessing
	case "done", "completed":
		return models.JobStatusDone
	case "error", "failed":
		return models.JobStatusError
	case "":
		return models.JobStatusPending
	default:
		logger.Warn("unrecognized provider status, treating as pending", "native_status", native)
		return models.JobStatusPending
	}
}
