package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"evervoice_backend/pkg/apperrors"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// SpeechSynthesizer converts text plus a voice identity into audio bytes
// and manages voice clones.
type SpeechSynthesizer interface {
	TTS(ctx context.Context, voiceID, text string) ([]byte, error)
	CreateVoice(ctx context.Context, userID string, sample []byte, filename string) (string, error)
}

// ElevenLabsClient talks to the ElevenLabs API. Auth uses the xi-api-key
// header, not a Bearer token.
type ElevenLabsClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewElevenLabsClient(apiKey string, httpClient *http.Client) *ElevenLabsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ElevenLabsClient{
		baseURL: elevenLabsBaseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

type ttsRequest struct {
	Text          string        `json:"text"`
	VoiceSettings voiceSettings `json:"voice_settings"`
	OutputFormat  string        `json:"output_format"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// TTS renders text with the given voice and returns mp3 bytes.
func (c *ElevenLabsClient) TTS(ctx context.Context, voiceID, text string) ([]byte, error) {
	payload, err := json.Marshal(ttsRequest{
		Text:          text,
		VoiceSettings: voiceSettings{Stability: 0.5, SimilarityBoost: 0.75},
		OutputFormat:  "mp3_44100_128",
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "elevenlabs", "tts request failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// 4xx usually means a bad voice id or payload, 5xx a provider
		// outage; both surface as ProviderError with the upstream detail.
		return nil, providerHTTPError("elevenlabs", "tts", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "elevenlabs", "reading tts audio failed", resp.StatusCode, "")
	}
	return audio, nil
}

type voiceCreateResponse struct {
	VoiceID string `json:"voice_id"`
}

// CreateVoice uploads a voice sample and returns the new clone's voice id.
// The multipart field name must be "files" (plural), per the API.
func (c *ElevenLabsClient) CreateVoice(ctx context.Context, userID string, sample []byte, filename string) (string, error) {
	if filename == "" {
		filename = "sample.mp3"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if _, err := part.Write(sample); err != nil {
		return "", apperrors.InternalError(err)
	}
	if err := mw.WriteField("name", "user-"+userID); err != nil {
		return "", apperrors.InternalError(err)
	}
	if err := mw.Close(); err != nil {
		return "", apperrors.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/voices/add", &buf)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.ErrProvider(err, "elevenlabs", "voice upload failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", providerHTTPError("elevenlabs", "voice upload", resp)
	}

	var out voiceCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.ErrProviderContract("elevenlabs", "voice upload response was not valid JSON")
	}
	if out.VoiceID == "" {
		return "", apperrors.ErrProviderContract("elevenlabs", "voice upload response missing voice_id")
	}
	return out.VoiceID, nil
}
