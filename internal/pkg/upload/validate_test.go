package upload

import "testing"

var (
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	pdfHead  = []byte("%PDF-1.7\n%stuff")
	htmlHead = []byte("<!DOCTYPE html><html><body>x</body></html>")
)

func TestValidateIDProofBySniff(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		head     []byte
		wantErr  bool
	}{
		{name: "jpeg photo", filename: "aadhaar.jpg", head: jpegHead},
		{name: "png scan", filename: "passport.PNG", head: pngHead},
		{name: "pdf scan", filename: "license.pdf", head: pdfHead},
		{name: "disallowed extension", filename: "proof.gif", head: pngHead, wantErr: true},
		{name: "svg disguised as png", filename: "proof.png", head: []byte(`<?xml version="1.0"?><svg></svg>`), wantErr: true},
		{name: "html disguised as jpg", filename: "proof.jpg", head: htmlHead, wantErr: true},
		{name: "plain text as jpg", filename: "proof.jpg", head: []byte("hello world"), wantErr: true},
		{name: "no extension", filename: "proof", head: jpegHead, wantErr: true},
	}

	for _, tt := range tests {
		mime, err := ValidateIDProofBySniff(tt.filename, tt.head)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got mime %q", tt.name, mime)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if mime == "" {
			t.Fatalf("%s: empty mime for accepted file", tt.name)
		}
	}
}
