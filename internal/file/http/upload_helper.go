package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonwuio/clubhub-backend/internal/auth"
	"github.com/jasonwuio/clubhub-backend/internal/file"
	"github.com/jasonwuio/clubhub-backend/internal/pkg/response"
)

// UploadConfig defines how one upload endpoint constrains its files.
type UploadConfig struct {
	FormFieldName  string   // form field carrying the file (default: "file")
	MaxSizeBytes   int64    // 0 = no limit
	AllowedTypes   []string // empty = allow all
	NormalizeImage bool     // re-encode as bounded JPEG
	// AfterUpload runs after a successful upload, typically to attach the
	// file URL to its owning entity. A failure rolls the upload back.
	AfterUpload func(ctx context.Context, fileID string) error
}

// HandleUpload is the shared implementation behind every upload endpoint.
func (h *Handler) HandleUpload(c *gin.Context, config UploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldName + " is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:     fileHeader,
		UserID:         auth.GetUserID(c),
		MaxSizeBytes:   config.MaxSizeBytes,
		AllowedTypes:   config.AllowedTypes,
		NormalizeImage: config.NormalizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			// Roll back the orphaned upload before reporting the failure.
			_ = h.fileService.Delete(c.Request.Context(), f.ID, "")
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
