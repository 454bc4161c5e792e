package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog"

	"chantierpro/api/internal/config"
	"chantierpro/api/internal/ids"
	"chantierpro/api/internal/media/sniffer"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/storage"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

type MediaStore interface {
	Create(ctx context.Context, media models.Media) error
	GetByID(ctx context.Context, id string) (models.Media, error)
	Delete(ctx context.Context, id string) error
}

type UploadService struct {
	media MediaStore
	store *storage.ObjectStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewUploadService(media MediaStore, store *storage.ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		media: media,
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

type UploadInput struct {
	UploadedBy string
	File       multipart.File
	Header     *multipart.FileHeader
}

type UploadOutput struct {
	Media models.Media
	URL   string
}

func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadOutput, error) {
	if input.File == nil || input.Header == nil {
		return UploadOutput{}, errors.New("invalid file payload")
	}

	if input.Header.Size > s.cfg.Uploads.MaxSizeBytes {
		return UploadOutput{}, ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := input.File.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return UploadOutput{}, fmt.Errorf("read head: %w", err)
	}
	head = head[:n]

	result, err := sniffer.Detect(head, input.Header.Filename)
	if err != nil {
		return UploadOutput{}, ErrUnsupportedFile
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(input.Header.Header))
	if declared != "" && declared != result.MIME {
		return UploadOutput{}, fmt.Errorf("%w: declared %s, detected %s", ErrUnsupportedFile, declared, result.MIME)
	}

	seeker, ok := input.File.(io.ReadSeeker)
	if !ok {
		return UploadOutput{}, errors.New("file not seekable")
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return UploadOutput{}, fmt.Errorf("rewind: %w", err)
	}

	mediaID := ids.New()
	objectKey := s.buildObjectKey(mediaID, result.Ext)

	size, err := s.store.Put(ctx, objectKey, seeker, input.Header.Size, result.MIME)
	if err != nil {
		return UploadOutput{}, err
	}

	media := models.Media{
		ID:         mediaID,
		FileName:   input.Header.Filename,
		ObjectKey:  objectKey,
		Bucket:     s.store.Bucket(),
		MIME:       result.MIME,
		SizeBytes:  size,
		UploadedBy: input.UploadedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.media.Create(ctx, media); err != nil {
		return UploadOutput{}, fmt.Errorf("save metadata: %w", err)
	}

	return UploadOutput{
		Media: media,
		URL:   s.store.PublicURL(objectKey),
	}, nil
}

// Delete removes the object first; a dangling row is worse than a dangling
// object.
func (s *UploadService) Delete(ctx context.Context, id string) error {
	media, err := s.media.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, media.ObjectKey); err != nil {
		s.log.Warn().Err(err).Str("object_key", media.ObjectKey).Msg("remove object failed")
	}

	return s.media.Delete(ctx, id)
}

func (s *UploadService) buildObjectKey(mediaID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", mediaID, ext))
}
