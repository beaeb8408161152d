package validation

import (
	"mime/multipart"
	"net/mail"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, maxLen int, v Violations) {
	if len(value) > maxLen {
		v[field] = "too_long"
	}
}

func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_be_non_negative"
	}
}

// MaxImageBytes is the upload cap shared by client and server validation.
const MaxImageBytes = 5 << 20

// ImageFile validates an uploaded file header before any byte is stored:
// type must be image/* and size at most MaxImageBytes.
func ImageFile(field string, fh *multipart.FileHeader, v Violations) {
	if fh == nil {
		v[field] = "required"
		return
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		v[field] = "not_an_image"
		return
	}
	if fh.Size > MaxImageBytes {
		v[field] = "image_too_large"
	}
}
