// Package blobstore persists uploaded note files. Two backends exist: a
// local filesystem store served under a public mount, and an S3-compatible
// object store. Both generate collision-resistant names from the upload
// timestamp, a random suffix, and a sanitized original filename.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFile references a persisted blob.
type StoredFile struct {
	// Name is the generated storage name, usable as a key in the backend.
	Name string
	// PublicPath is the URL path (or URL) clients fetch the blob from.
	PublicPath string
}

// Store is the blob storage capability used by the note service.
type Store interface {
	// Save persists the content of r under a generated name.
	Save(ctx context.Context, r io.Reader, originalName string) (*StoredFile, error)

	// Remove deletes a blob by name. Removing an absent blob is not an
	// error; note deletion must never fail on a missing file.
	Remove(ctx context.Context, name string) error

	// PublicPath derives the client-facing path for a stored name.
	PublicPath(name string) string
}

// GenerateName builds a storage name from the current time, a short random
// suffix, and the sanitized original filename. The timestamp keeps names
// roughly sortable; the suffix guards against same-millisecond collisions.
func GenerateName(originalName string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], SanitizeName(originalName))
}

// SanitizeName strips any path components from the uploaded filename and
// collapses whitespace runs to single underscores.
func SanitizeName(originalName string) string {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return name
}
