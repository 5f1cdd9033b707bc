// Package storage defines the archive journal interface and its implementations.
package storage

import (
	"context"

	"tg_archiver/internal/model"
)

// Storage records every file the bot saves.
type Storage interface {
	RecordFile(ctx context.Context, f *model.ArchivedFile) error
	ListRecent(ctx context.Context, chatID int64, limit int) ([]model.ArchivedFile, error)
	CountFiles(ctx context.Context, chatID int64) (int, error)

	Close() error
}
