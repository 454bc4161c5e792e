package sniffer

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// The media library accepts images, PDFs and Office documents. Detection
// pairs the file's magic bytes with its declared extension: the extension
// picks the MIME, the magic confirms the container family.
var ErrUnsupportedType = errors.New("unsupported file type")

type Result struct {
	Ext  string
	MIME string
}

var extMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".xls":  "application/vnd.ms-excel",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func Detect(head []byte, fileName string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	mime, ok := extMIME[ext]
	if !ok {
		return Result{}, ErrUnsupportedType
	}

	if !magicMatches(ext, head) {
		return Result{}, ErrUnsupportedType
	}

	return Result{Ext: strings.TrimPrefix(ext, "."), MIME: mime}, nil
}

func magicMatches(ext string, head []byte) bool {
	switch ext {
	case ".jpg", ".jpeg":
		return isJPEG(head)
	case ".png":
		return isPNG(head)
	case ".gif":
		return isGIF(head)
	case ".webp":
		return isWEBP(head)
	case ".pdf":
		return isPDF(head)
	case ".docx", ".xlsx":
		return isZip(head)
	case ".doc", ".xls":
		return isOLE(head)
	default:
		return false
	}
}

func isJPEG(head []byte) bool {
	return len(head) > 3 &&
		head[0] == 0xff &&
		head[1] == 0xd8 &&
		head[2] == 0xff
}

func isPNG(head []byte) bool {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

func isPDF(head []byte) bool {
	return len(head) >= 5 && bytes.Equal(head[:5], []byte("%PDF-"))
}

func isZip(head []byte) bool {
	return len(head) >= 4 && head[0] == 'P' && head[1] == 'K' && head[2] == 0x03 && head[3] == 0x04
}

func isOLE(head []byte) bool {
	oleMagic := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	return len(head) >= len(oleMagic) && bytes.Equal(head[:len(oleMagic)], oleMagic)
}

func MimeTypeFromHTTP(header http.Header) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return ""
	}
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		return strings.TrimSpace(contentType[:idx])
	}
	return strings.TrimSpace(contentType)
}
