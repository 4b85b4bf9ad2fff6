package parser

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes is the upload limit the editor advertises.
const DefaultMaxBytes = 5 << 20

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrTooLarge        = errors.New("file exceeds upload limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Upload is a single resume document sent by the editor.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Kind identifies an accepted document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOC  Kind = "doc"
	KindDOCX Kind = "docx"
)

var kinds = map[string]struct {
	kind  Kind
	mime  string
	magic []byte
}{
	".pdf":  {KindPDF, "application/pdf", []byte("%PDF")},
	".doc":  {KindDOC, "application/msword", []byte{0xD0, 0xCF, 0x11, 0xE0}},
	".docx": {KindDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK\x03\x04")},
}

// Check validates an upload against the accepted formats and the size limit
// and returns its kind. The extension decides the format and the content must
// carry the matching signature.
func Check(u Upload, maxBytes int64) (Kind, error) {
	if len(u.Data) == 0 {
		return "", ErrNoFile
	}
	if maxBytes > 0 && int64(len(u.Data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(u.Data), maxBytes)
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	k, ok := kinds[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if !bytes.HasPrefix(u.Data, k.magic) {
		return "", fmt.Errorf("%w: %s content does not look like %s", ErrUnsupportedType, u.Filename, k.kind)
	}
	return k.kind, nil
}

// MIMEType returns the canonical content type for an accepted file name.
func MIMEType(filename string) string {
	if k, ok := kinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return k.mime
	}
	return "application/octet-stream"
}
