package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"chantierpro/api/internal/config"
)

type fakeFile struct{ *bytes.Reader }

func (fakeFile) Close() error { return nil }

func uploadFixture() *UploadService {
	cfg := &config.AppConfig{
		Uploads: config.UploadsConfig{MaxSizeBytes: 10 << 20},
	}
	return NewUploadService(nil, nil, cfg, zerolog.Nop())
}

func fileHeader(name string, size int64, contentType string) *multipart.FileHeader {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		header.Header.Set("Content-Type", contentType)
	}
	return header
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := uploadFixture()

	_, err := svc.Upload(context.Background(), UploadInput{
		UploadedBy: "user-1",
		File:       fakeFile{bytes.NewReader([]byte("x"))},
		Header:     fileHeader("huge.jpg", 11<<20, ""),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := uploadFixture()
	payload := []byte("#!/bin/sh\necho hi\n")

	_, err := svc.Upload(context.Background(), UploadInput{
		UploadedBy: "user-1",
		File:       fakeFile{bytes.NewReader(payload)},
		Header:     fileHeader("script.sh", int64(len(payload)), ""),
	})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestUploadRejectsSpoofedExtension(t *testing.T) {
	svc := uploadFixture()
	// PNG magic behind a .jpg name.
	payload := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	_, err := svc.Upload(context.Background(), UploadInput{
		UploadedBy: "user-1",
		File:       fakeFile{bytes.NewReader(payload)},
		Header:     fileHeader("photo.jpg", int64(len(payload)), ""),
	})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestUploadRejectsDeclaredMIMEMismatch(t *testing.T) {
	svc := uploadFixture()
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}

	_, err := svc.Upload(context.Background(), UploadInput{
		UploadedBy: "user-1",
		File:       fakeFile{bytes.NewReader(payload)},
		Header:     fileHeader("photo.jpg", int64(len(payload)), "image/png"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestUploadRejectsNilPayload(t *testing.T) {
	svc := uploadFixture()

	_, err := svc.Upload(context.Background(), UploadInput{UploadedBy: "user-1"})
	assert.Error(t, err)
}
