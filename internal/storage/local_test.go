package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndGet(t *testing.T) {
	store, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("mp3-bytes")
	require.NoError(t, store.Save(ctx, "voices/user-1/a.mp3", bytes.NewReader(data), "audio/mpeg"))

	rc, err := store.Get(ctx, "voices/user-1/a.mp3")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLocalStorage_GetSignedURL(t *testing.T) {
	store, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)

	url, err := store.GetSignedURL(context.Background(), "voices/user-1/a.mp3", 12*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/voices/user-1/a.mp3", url)
}

func TestNewStorage_UnsupportedType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	require.Error(t, err)
}
