// Package model defines the domain types used across the application.
package model

import "time"

// MediaKind is the kind of Telegram media a file was saved from.
type MediaKind string

// Supported media kinds.
const (
	KindPhoto   MediaKind = "photo"
	KindSticker MediaKind = "sticker"
)

// ArchivedFile is a journal entry for a file saved to the archive.
type ArchivedFile struct {
	ID           int64
	ChatID       int64
	MessageID    int
	Kind         MediaKind
	MediaGroupID string
	Username     string
	Path         string
	Size         int64
	CreatedAt    time.Time
}
