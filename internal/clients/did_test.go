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

func newTestDidClient(srv *httptest.Server) *DidClient {
	c := NewDidClient("test-key", srv.Client())
	c.baseURL = srv.URL
	return c
}

func TestDidClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/talks", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://cdn.example.com/photo.jpg", body["source_url"])
		assert.Equal(t, "https://cdn.example.com/audio.mp3", body["audio_url"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"tlk_123","status":"created"}`))
	}))
	defer srv.Close()

	res, err := newTestDidClient(srv).Submit(context.Background(), SubmitInput{
		PhotoURL: "https://cdn.example.com/photo.jpg",
		AudioURL: "https://cdn.example.com/audio.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, "tlk_123", res.ProviderJobID)
	assert.Equal(t, "created", res.NativeStatus)
	assert.JSONEq(t, `{"id":"tlk_123","status":"created"}`, string(res.Raw))
}

func TestDidClient_Submit_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	_, err := newTestDidClient(srv).Submit(context.Background(), SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProviderContract, apperrors.CodeOf(err))
}

func TestDidClient_Submit_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"kind":"InternalError"}`))
	}))
	defer srv.Close()

	_, err := newTestDidClient(srv).Submit(context.Background(), SubmitInput{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProviderError, apperrors.CodeOf(err))

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode)
}

func TestDidClient_QueryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/talks/tlk_123", r.URL.Path)
		w.Write([]byte(`{"id":"tlk_123","status":"done","result_url":"https://cdn.example.com/out.mp4"}`))
	}))
	defer srv.Close()

	st, err := newTestDidClient(srv).QueryStatus(context.Background(), "tlk_123")
	require.NoError(t, err)
	assert.Equal(t, "done", st.NativeStatus)
	assert.Equal(t, "https://cdn.example.com/out.mp4", st.ResultURL)
}
