package file

import (
	"time"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("file not found")
	ErrNoThumbnail  = apperror.NotFound("no thumbnail for this file")
	ErrTooLarge     = apperror.Validation("file exceeds the size limit")
	ErrWrongType    = apperror.Validation("file type is not allowed")
	ErrNotAnUpload  = apperror.Validation("uploaded content is not a valid image")
	ErrNotFileOwner = apperror.Forbidden("only the uploader can delete a file")
)

// File is the metadata record for one stored blob.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileURL returns the public URL serving the file content.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL serving the file's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
