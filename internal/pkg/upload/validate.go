package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// ID-proof documents: common photo formats plus PDF scans.
var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MaxIDProofBytes caps the accepted ID-proof size.
const MaxIDProofBytes = 5 << 20 // 5 MiB

// ValidateIDProofBySniff checks the provided filename (extension) and the
// first bytes (head) against the whitelist of ID-proof document types.
// Returns the detected mime or an error.
func ValidateIDProofBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, WEBP and PDF files are accepted as ID proof")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		return "", errors.New("SVG/XML files are not accepted")
	}

	// PDF headers may be detected as octet-stream depending on Go version;
	// allow by extension in that case
	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("the file type is not supported")
}
