// Package blob abstracts the object store that payment proofs, photos
// and event assets are written to. The core only depends on Store;
// DiskStore is the local implementation serving files over /public.
package blob

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/merasports/hub/pkg/apperr"
)

type Store interface {
	// Put persists the payload and returns a durable URL for it. The
	// hint names the logical folder ("payment-proofs", "banners", ...).
	Put(data []byte, contentType, hint string) (string, error)
}

// DiskStore writes blobs under Dir and returns URLs below BaseURL,
// matching the router's static mount of the upload directory.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Put(data []byte, contentType, hint string) (string, error) {
	ext := extensionFor(contentType)
	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)

	dir := filepath.Join(s.Dir, hint)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Dependency("blob store unavailable", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", apperr.Dependency("blob store write failed", err)
	}
	return s.BaseURL + "/" + hint + "/" + name, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return "pdf"
	case "image/jpeg":
		return "jpg"
	default:
		if strings.HasPrefix(contentType, "image/") {
			return strings.TrimPrefix(contentType, "image/")
		}
		return "bin"
	}
}

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z]+|application/pdf);base64,(.+)$`)

// PutDataURL decodes a base64 data URL and stores it. Inputs that are
// already plain URLs pass through untouched; empty input yields an empty
// URL. Clients submit proofs and photos this way.
func PutDataURL(s Store, dataURL, hint string) (string, error) {
	if dataURL == "" {
		return "", nil
	}
	if strings.HasPrefix(dataURL, "http") {
		return dataURL, nil
	}

	m := dataURLPattern.FindStringSubmatch(dataURL)
	if m == nil {
		return "", apperr.Validation("invalid file payload, expected a base64 data URL")
	}
	payload, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", apperr.Validation("invalid base64 file payload")
	}
	return s.Put(payload, m[1], hint)
}
