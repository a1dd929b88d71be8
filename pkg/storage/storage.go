// Package storage keeps corrected documents until they are deleted.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/notaspie/notaspie/config"
	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// New creates the storage backend selected in cfg.
func New(cfg config.StorageConfig) (models.DocumentStorage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStorage(cfg.Local.Path)
	case TypeS3:
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("storage.s3.bucket must be set for S3 storage")
		}
		return NewS3Storage(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// DocumentPath is the storage path of a file. It depends only on the file
// id and the lower-cased extension of filename, so a stored document can be
// found again from its id.
func DocumentPath(fileID uuid.UUID, filename string) string {
	id := fileID.String()
	return fmt.Sprintf("%s/%s%s", id[:2], id, extension(filename))
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func contentType(filename string) string {
	switch extension(filename) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".html":
		return "text/html; charset=utf-8"
	case ".txt", ".md":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
