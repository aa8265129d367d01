package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"stratium/internal/errs"
	"stratium/internal/storage"
)

// maxUploadSize is the maximum allowed cover image upload size (10 MB).
const maxUploadSize = 10 << 20

// allowedMediaTypes defines MIME types accepted for cover images and avatars.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Media handles cover image uploads to S3-compatible storage. The storage
// client is nil when S3 is not configured; uploads then return 503.
type Media struct {
	storage *storage.Client
}

// NewMedia creates a new Media handler group.
func NewMedia(client *storage.Client) *Media {
	return &Media{storage: client}
}

// Upload stores a multipart image and returns its public URL
// (POST /api/admin/media).
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Object storage is not configured",
		})
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "File too large. Maximum size is 10 MB.",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "File too large. Maximum size is 10 MB.",
		})
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read file"})
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	if !allowedMediaTypes[contentType] {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("File type %q is not allowed", contentType),
		})
		return
	}

	// Seek back to start after sniffing.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process file"})
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read file"})
		return
	}

	// Generate a unique storage key, grouped by year/month.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	if err := h.storage.Upload(r.Context(), key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to upload file"})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"url":      h.storage.FileURL(key),
		"filename": header.Filename,
		"size":     len(fileBytes),
		"type":     contentType,
	})
}

// Delete removes a previously uploaded object, addressed by its public
// URL (DELETE /api/admin/media). URLs outside the configured bucket are
// rejected so the endpoint cannot be pointed at arbitrary objects.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Object storage is not configured",
		})
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	key, ok := h.storage.ExtractKey(req.URL)
	if !ok {
		respondError(w, errs.Validationf("url", "URL does not belong to media storage"))
		return
	}

	if err := h.storage.Delete(r.Context(), key); err != nil {
		slog.Error("s3 delete failed", "error", err, "key", key)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete file"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
