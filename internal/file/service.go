package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jasonwuio/clubhub-backend/internal/pkg/storage"
)

// UploadInput carries one multipart upload plus the constraints the calling
// endpoint imposes on it.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 means no limit
	AllowedTypes []string // empty means allow all
	// NormalizeImage re-encodes the upload as a bounded JPEG. Endpoints
	// accepting logos and posters set this so clients cannot push huge or
	// exotic image formats into the media store.
	NormalizeImage bool
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Get(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id, actorID string) error
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	if in.MaxSizeBytes > 0 && in.FileHeader.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	contentType := in.FileHeader.Header.Get("Content-Type")
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrWrongType
	}

	src, err := in.FileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	// Uploads are images of bounded size, so buffering the whole payload
	// for the resize and save passes is acceptable.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	filename := in.FileHeader.Filename
	size := in.FileHeader.Size
	ext := strings.ToLower(filepath.Ext(filename))

	if in.NormalizeImage {
		normalized, err := s.imgProc.Normalize(bytes.NewReader(fileBytes))
		if err != nil {
			return nil, ErrNotAnUpload
		}
		fileBytes, err = io.ReadAll(normalized)
		if err != nil {
			return nil, fmt.Errorf("read normalized image: %w", err)
		}
		contentType = "image/jpeg"
		ext = ".jpg"
		size = int64(len(fileBytes))
	}

	fileID := uuid.New().String()

	// Shard by the first two UUID characters so one directory never holds
	// the whole media store.
	shard := fileID[:2]
	storagePath := fmt.Sprintf("upload/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save uploaded file: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumb, err := s.imgProc.Thumbnail(bytes.NewReader(fileBytes), 200, 200)
		if err != nil {
			slog.Warn("thumbnail generation failed", "file_id", fileID, "error", err)
		} else {
			tPath := fmt.Sprintf("upload/%s/%s_thumb.jpg", shard, fileID)
			if err := s.storage.Save(ctx, tPath, thumb); err != nil {
				slog.Warn("thumbnail save failed", "file_id", fileID, "error", err)
			} else {
				thumbnailPath = &tPath
			}
		}
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}
	return f, nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actorID != "" && f.UserID != actorID {
		return ErrNotFileOwner
	}

	// Best-effort blob cleanup; the record is the source of truth.
	_ = s.storage.Delete(ctx, f.StoragePath)
	if f.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *f.ThumbnailPath)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve file content: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieve thumbnail content: %w", err)
	}
	return stream, f, nil
}
