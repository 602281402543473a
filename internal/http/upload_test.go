package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadAPI(t *testing.T) *UploadAPI {
	t.Helper()
	return &UploadAPI{
		Dir: t.TempDir(),
		Log: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadStoresFileAndReturnsURL(t *testing.T) {
	api := newUploadAPI(t)
	body, contentType := multipartImage(t, "cat.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp uploadResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".png"))

	// The referenced file exists and carries the uploaded bytes.
	name := strings.TrimPrefix(resp.URL, "/uploads/")
	data, err := os.ReadFile(filepath.Join(api.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	api := newUploadAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", io.NopCloser(bytes.NewReader(nil)))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()

	api.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejectsNonPost(t *testing.T) {
	api := newUploadAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	rec := httptest.NewRecorder()

	api.Upload(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
