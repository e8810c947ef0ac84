package blob

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStorePut(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, "/public/uploads")

	url, err := s.Put([]byte("fake-png"), "image/png", "payment-proofs")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(url, "/public/uploads/payment-proofs/") {
		t.Errorf("url = %q, want payment-proofs prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want .png suffix", url)
	}

	rel := strings.TrimPrefix(url, "/public/uploads/")
	b, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("reading stored blob: %v", err)
	}
	if string(b) != "fake-png" {
		t.Errorf("stored payload = %q", b)
	}
}

func TestPutDataURL(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir, "/public/uploads")
	encoded := base64.StdEncoding.EncodeToString([]byte("proof-bytes"))

	t.Run("valid image data URL", func(t *testing.T) {
		url, err := PutDataURL(s, "data:image/jpeg;base64,"+encoded, "payment-proofs")
		if err != nil {
			t.Fatalf("PutDataURL: %v", err)
		}
		if !strings.HasSuffix(url, ".jpg") {
			t.Errorf("url = %q, want .jpg suffix", url)
		}
	})

	t.Run("pdf data URL", func(t *testing.T) {
		url, err := PutDataURL(s, "data:application/pdf;base64,"+encoded, "docs")
		if err != nil {
			t.Fatalf("PutDataURL: %v", err)
		}
		if !strings.HasSuffix(url, ".pdf") {
			t.Errorf("url = %q, want .pdf suffix", url)
		}
	})

	t.Run("plain URL passes through", func(t *testing.T) {
		url, err := PutDataURL(s, "https://cdn.example.com/x.png", "banners")
		if err != nil || url != "https://cdn.example.com/x.png" {
			t.Errorf("got (%q, %v), want pass-through", url, err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		url, err := PutDataURL(s, "", "banners")
		if err != nil || url != "" {
			t.Errorf("got (%q, %v), want empty", url, err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		if _, err := PutDataURL(s, "data:text/html;base64,"+encoded, "banners"); err == nil {
			t.Error("expected error for unsupported content type")
		}
	})
}
