package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"evervoice_backend/pkg/apperrors"
)

const didBaseURL = "https://api.d-id.com"

// DidClient drives the D-ID Talks API:
//
//	POST /v1/talks        -> create (id, status)
//	GET  /v1/talks/{id}   -> status (status, result_url)
//
// Its native status vocabulary is created|started|processing|in_progress|
// done|completed|error|failed.
type DidClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewDidClient(apiKey string, httpClient *http.Client) *DidClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DidClient{
		baseURL: didBaseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *DidClient) Name() string { return "did" }

type didCreateRequest struct {
	SourceURL string `json:"source_url"`
	AudioURL  string `json:"audio_url"`
}

type didCreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type didStatusResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ResultURL string `json:"result_url"`
}

func (c *DidClient) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	payload, err := json.Marshal(didCreateRequest{
		SourceURL: in.PhotoURL,
		AudioURL:  in.AudioURL,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/talks", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "did", "talk creation failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, providerHTTPError("did", "talk creation", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "did", "reading talk creation response failed", resp.StatusCode, "")
	}

	var out didCreateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperrors.ErrProviderContract("did", "talk creation response was not valid JSON")
	}
	if out.ID == "" {
		return nil, apperrors.ErrProviderContract("did", "talk creation response missing id")
	}

	return &SubmitResult{
		ProviderJobID: out.ID,
		NativeStatus:  out.Status,
		Raw:           raw,
	}, nil
}

func (c *DidClient) QueryStatus(ctx context.Context, providerJobID string) (*StatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/talks/"+providerJobID, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider(err, "did", "talk status query failed", 0, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, providerHTTPError("did", "talk status query", resp)
	}

	var out didStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.ErrProviderContract("did", "talk status response was not valid JSON")
	}

	return &StatusResult{
		NativeStatus: out.Status,
		ResultURL:    out.ResultURL,
	}, nil
}
