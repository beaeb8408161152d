package handlers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/groupebh/gbh-backend/httpx"
	"github.com/groupebh/gbh-backend/validation"
)

// UploadHandler stores admin-submitted images and returns the public URL to
// put on the owning record. Validation happens before any byte touches disk:
// a rejected file costs nothing and clobbers nothing.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler { return &UploadHandler{Dir: dir} }

func (h *UploadHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/upload", h.upload)
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	// +1KB of form overhead headroom over the image cap
	if err := r.ParseMultipartForm(validation.MaxImageBytes + 1024); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_file", nil)
		return
	}
	defer file.Close()

	v := validation.Violations{}
	validation.ImageFile("file", header, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".img"
	}
	name := uuid.NewString() + ext
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	dst, err := os.Create(filepath.Join(h.Dir, name))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, validation.MaxImageBytes)); err != nil {
		log.Printf("upload: write %s: %v", name, err)
		_ = os.Remove(dst.Name())
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}
