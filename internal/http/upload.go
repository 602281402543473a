package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"log/slog"
)

// maxUploadBytes caps a single image upload.
const maxUploadBytes = 10 << 20

// UploadAPI stores uploaded images on disk and hands back a URL the client
// embeds in a message's image field. The chat core treats that reference as
// opaque.
type UploadAPI struct {
	Dir string
	Log *slog.Logger
}

type uploadResp struct {
	URL string `json:"url"`
}

// Upload accepts a multipart "image" file and responds with its /uploads/ URL.
func (a *UploadAPI) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		a.Log.Error("upload.mkdir", "dir", a.Dir, "err", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	// Random name, client-supplied extension only
	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(a.Dir, name))
	if err != nil {
		a.Log.Error("upload.create", "name", name, "err", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		a.Log.Error("upload.write", "name", name, "err", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	a.Log.Info("upload.saved", "name", name, "size", header.Size)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(uploadResp{URL: "/uploads/" + name})
}
