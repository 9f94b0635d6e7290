package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"evervoice_backend/pkg/apperrors"
)

const heygenBaseURL = "https://api.heygen.com"

// HeygenClient drives the HeyGen avatar-video API:
//
//	POST /v2/video/av4/generate            -> data.video_id
//	GET  /v1/video_status.get?video_id=... -> data.status (+ video_url)
//
// HeyGen only guarantees "completed" and "failed"; everything else is
// treated as still pending. A submission returns no status at all, so the
// native status is reported empty and maps to PENDING.
type HeygenClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHeygenClient(apiKey string, httpClient *http.Client) *HeygenClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HeygenClient{
		baseURL: heygenBaseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *HeygenClient) Name() string { return "heygen" }

type heygenVoice struct {
	Type     string `json:"type"`
	AudioURL string `json:"audio_url"`
}

type heygenDimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type heygenGenerateRequest struct {
	Title     string          `json:"title"`
	ImageURL  string          `json:"image_url"`
	Voice     heygenVoice     `json:"voice"`
	Dimension heygenDimension `json:"dimension"`
}

func (c *HeygenClient) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	title := in.Title
	if title == "" {
		title = "EverVoice"
	}
	width, height := in.Width, in.Height
	if width == 0 {
		width = 1280
	}
	if height == 0 {
		height = 720
	}

	payload, err := json.Marshal(heygenGenerateRequest{
		Title:     title,
		ImageURL:  in.PhotoURL,
		Voice:     heygenVoice{Type: "audio", AudioURL: in.AudioURL},
		Dimension: heygenDimension{Width: width, Height: height},
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/video/av4/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "heygen", "video generation failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, providerHTTPError("heygen", "video generation", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "heygen", "reading generation response failed", resp.StatusCode, "")
	}

	// The video id arrives either as data.video_id or, on some accounts,
	// at the top level. Check both before declaring the contract broken.
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apperrors.ErrProviderContract("heygen", "generation response was not valid JSON")
	}

	videoID := ""
	if data, ok := body["data"].(map[string]interface{}); ok {
		if v, ok := data["video_id"].(string); ok {
			videoID = v
		}
	}
	if videoID == "" {
		if v, ok := body["video_id"].(string); ok {
			videoID = v
		}
	}
	if videoID == "" {
		return nil, apperrors.ErrProviderContract("heygen", "generation response missing video_id")
	}

	return &SubmitResult{
		ProviderJobID: videoID,
		NativeStatus:  "", // no initial status from HeyGen; maps to PENDING
		Raw:           raw,
	}, nil
}

func (c *HeygenClient) QueryStatus(ctx context.Context, providerJobID string) (*StatusResult, error) {
	u := c.baseURL + "/v1/video_status.get?video_id=" + url.QueryEscape(providerJobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "heygen", "status query failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, providerHTTPError("heygen", "status query", resp)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.ErrProviderContract("heygen", "status response was not valid JSON")
	}

	// Status and URL may sit under data or at the top level; the URL key
	// is video_url on newer accounts and url on older ones.
	fields := body
	if data, ok := body["data"].(map[string]interface{}); ok {
		fields = data
	}

	out := &StatusResult{}
	if v, ok := fields["status"].(string); ok {
		out.NativeStatus = v
	}
	if v, ok := fields["video_url"].(string); ok && v != "" {
		out.ResultURL = v
	} else if v, ok := fields["url"].(string); ok {
		out.ResultURL = v
	}
	return out, nil
}
