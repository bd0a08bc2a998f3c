package analysis

import (
	"mime"
	"strings"

	"github.com/BruksfildServices01/personal-color/internal/httperr"
)

// UploadPolicy holds the limits applied to every uploaded portrait.
type UploadPolicy struct {
	MaxBytes     int64
	ContentTypes []string
	// MaxPixels caps width*height so decoding stays bounded. Zero disables it.
	MaxPixels int64
}

// NormalizeContentType strips parameters and lower-cases a media type.
func NormalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(ct)
}

func (p UploadPolicy) Allows(contentType string) bool {
	ct := NormalizeContentType(contentType)
	if ct == "" {
		return false
	}
	for _, allowed := range p.ContentTypes {
		if NormalizeContentType(allowed) == ct {
			return true
		}
	}
	return false
}

// CheckSize validates the size of an upload before it is read.
func (p UploadPolicy) CheckSize(size int64) error {
	if size <= 0 {
		return httperr.ErrBusiness(httperr.CodeEmptyFile)
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return httperr.ErrBusiness(httperr.CodeFileTooLarge)
	}
	return nil
}

// CheckDimensions rejects images whose decoded size would exceed MaxPixels.
func (p UploadPolicy) CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	if p.MaxPixels > 0 && int64(width)*int64(height) > p.MaxPixels {
		return httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	return nil
}

// Check validates size and declared content type.
func (p UploadPolicy) Check(size int64, contentType string) error {
	if err := p.CheckSize(size); err != nil {
		return err
	}
	if !p.Allows(contentType) {
		return httperr.ErrBusiness(httperr.CodeUnsupportedType)
	}
	return nil
}
