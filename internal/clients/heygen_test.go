package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"evervoice_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeygenClient(srv *httptest.Server) *HeygenClient {
	c := NewHeygenClient("test-key", srv.Client())
	c.baseURL = srv.URL
	return c
}

func TestHeygenClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/video/av4/generate", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body heygenGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://cdn.example.com/photo.jpg", body.ImageURL)
		assert.Equal(t, "audio", body.Voice.Type)
		assert.Equal(t, 1280, body.Dimension.Width)
		assert.Equal(t, 720, body.Dimension.Height)

		w.Write([]byte(`{"data":{"video_id":"vid_123"}}`))
	}))
	defer srv.Close()

	res, err := newTestHeygenClient(srv).Submit(context.Background(), SubmitInput{
		PhotoURL: "https://cdn.example.com/photo.jpg",
		AudioURL: "https://cdn.example.com/audio.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, "vid_123", res.ProviderJobID)
	assert.Empty(t, res.NativeStatus)
}

// Some accounts return the id at the top level instead of under data.
func TestHeygenClient_Submit_TopLevelVideoID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"video_id":"vid_456"}`))
	}))
	defer srv.Close()

	res, err := newTestHeygenClient(srv).Submit(context.Background(), SubmitInput{})
	require.NoError(t, err)
	assert.Equal(t, "vid_456", res.ProviderJobID)
}

func TestHeygenClient_Submit_MissingVideoID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := newTestHeygenClient(srv).Submit(context.Background(), SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProviderContract, apperrors.CodeOf(err))
}

func TestHeygenClient_QueryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/video_status.get", r.URL.Path)
		assert.Equal(t, "vid_123", r.URL.Query().Get("video_id"))
		w.Write([]byte(`{"data":{"status":"completed","video_url":"https://cdn.example.com/out.mp4"}}`))
	}))
	defer srv.Close()

	st, err := newTestHeygenClient(srv).QueryStatus(context.Background(), "vid_123")
	require.NoError(t, err)
	assert.Equal(t, "completed", st.NativeStatus)
	assert.Equal(t, "https://cdn.example.com/out.mp4", st.ResultURL)
}

// Older accounts report the URL under "url" and at the top level.
func TestHeygenClient_QueryStatus_LegacyShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"processing","url":"https://cdn.example.com/partial.mp4"}`))
	}))
	defer srv.Close()

	st, err := newTestHeygenClient(srv).QueryStatus(context.Background(), "vid_123")
	require.NoError(t, err)
	assert.Equal(t, "processing", st.NativeStatus)
	assert.Equal(t, "https://cdn.example.com/partial.mp4", st.ResultURL)
}
