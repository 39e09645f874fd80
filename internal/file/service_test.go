package file

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	files map[string]*File
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{files: map[string]*File{}}
}

func (f *fakeRepository) Create(ctx context.Context, file *File) error {
	clone := *file
	f.files[file.ID] = &clone
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*File, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *file
	return &clone, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	delete(f.files, id)
	return nil
}

// memStorage keeps blobs in a map so tests never touch the disk.
type memStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[path] = data
	return nil
}

func (m *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, path)
	return nil
}

// pngUpload builds a real multipart file header carrying a small PNG.
func pngUpload(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="` + filename + `"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores blob, thumbnail, and record", func(t *testing.T) {
		repo := newFakeRepository()
		store := newMemStorage()
		svc := NewService(repo, store)

		f, err := svc.Upload(ctx, UploadInput{
			FileHeader: pngUpload(t, "logo.png", 400, 300),
			UserID:     "user-1",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, f.ID)
		assert.Equal(t, "logo.png", f.Filename)
		assert.Equal(t, "image/png", f.ContentType)
		require.NotNil(t, f.ThumbnailPath)

		_, ok := store.blobs[f.StoragePath]
		assert.True(t, ok, "original blob should be saved")
		_, ok = store.blobs[*f.ThumbnailPath]
		assert.True(t, ok, "thumbnail blob should be saved")

		stored, err := repo.GetByID(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, "user-1", stored.UserID)
	})

	t.Run("normalization re-encodes as jpeg", func(t *testing.T) {
		svc := NewService(newFakeRepository(), newMemStorage())

		f, err := svc.Upload(ctx, UploadInput{
			FileHeader:     pngUpload(t, "poster.png", 2000, 1500),
			UserID:         "user-1",
			NormalizeImage: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", f.ContentType)
		assert.Contains(t, f.StoragePath, ".jpg")
	})

	t.Run("size limit enforced", func(t *testing.T) {
		svc := NewService(newFakeRepository(), newMemStorage())

		_, err := svc.Upload(ctx, UploadInput{
			FileHeader:   pngUpload(t, "big.png", 200, 200),
			UserID:       "user-1",
			MaxSizeBytes: 10,
		})
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("content type allowlist enforced", func(t *testing.T) {
		svc := NewService(newFakeRepository(), newMemStorage())

		_, err := svc.Upload(ctx, UploadInput{
			FileHeader:   pngUpload(t, "pic.png", 50, 50),
			UserID:       "user-1",
			AllowedTypes: []string{"image/jpeg"},
		})
		assert.ErrorIs(t, err, ErrWrongType)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	store := newMemStorage()
	svc := NewService(repo, store)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader: pngUpload(t, "doc.png", 50, 50),
		UserID:     "user-1",
	})
	require.NoError(t, err)

	t.Run("round-trips content", func(t *testing.T) {
		stream, info, err := svc.Download(ctx, f.ID)
		require.NoError(t, err)
		defer stream.Close()

		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Equal(t, f.ID, info.ID)
	})

	t.Run("thumbnail available for images", func(t *testing.T) {
		stream, _, err := svc.DownloadThumbnail(ctx, f.ID)
		require.NoError(t, err)
		stream.Close()
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := svc.Download(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteFile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	store := newMemStorage()
	svc := NewService(repo, store)

	f, err := svc.Upload(ctx, UploadInput{
		FileHeader: pngUpload(t, "gone.png", 50, 50),
		UserID:     "user-1",
	})
	require.NoError(t, err)

	t.Run("only the uploader may delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, f.ID, "user-2"), ErrNotFileOwner)
	})

	t.Run("delete removes blobs and record", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, f.ID, "user-1"))

		_, ok := store.blobs[f.StoragePath]
		assert.False(t, ok)
		_, err := repo.GetByID(ctx, f.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("internal delete skips the owner check", func(t *testing.T) {
		g, err := svc.Upload(ctx, UploadInput{
			FileHeader: pngUpload(t, "rollback.png", 50, 50),
			UserID:     "user-1",
		})
		require.NoError(t, err)

		assert.NoError(t, svc.Delete(ctx, g.ID, ""))
	})
}
