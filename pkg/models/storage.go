package models

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// DocumentStorage keeps corrected documents until the user deletes them.
type DocumentStorage interface {
	// Upload stores data and returns the storage path.
	Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error)
	// Download opens a stored file by storage path.
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	// Delete removes a stored file. Removing a missing file is not an error.
	Delete(ctx context.Context, storagePath string) error
}
