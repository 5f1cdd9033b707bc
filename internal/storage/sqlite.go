package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"tg_archiver/internal/model"
	"tg_archiver/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordFile inserts a journal entry and populates its ID and CreatedAt.
func (s *SQLite) RecordFile(ctx context.Context, f *model.ArchivedFile) error {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO archived_files (chat_id, message_id, kind, media_group_id, username, path, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ChatID, f.MessageID, string(f.Kind), f.MediaGroupID, f.Username, f.Path, f.Size, now,
	)
	if err != nil {
		return fmt.Errorf("insert archived file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	f.CreatedAt, _ = time.Parse(timeLayout, now)
	return nil
}

// ListRecent returns up to limit entries of the given chat, newest first.
func (s *SQLite) ListRecent(ctx context.Context, chatID int64, limit int) ([]model.ArchivedFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, message_id, kind, media_group_id, username, path, size, created_at
		 FROM archived_files WHERE chat_id = ? ORDER BY id DESC LIMIT ?`, chatID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query archived files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []model.ArchivedFile
	for rows.Next() {
		f, err := scanArchivedFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// CountFiles returns the number of files archived from the given chat.
func (s *SQLite) CountFiles(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM archived_files WHERE chat_id = ?`, chatID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count archived files: %w", err)
	}
	return count, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanArchivedFile(row scannable) (model.ArchivedFile, error) {
	var f model.ArchivedFile
	var kind, created string
	err := row.Scan(&f.ID, &f.ChatID, &f.MessageID, &kind, &f.MediaGroupID, &f.Username, &f.Path, &f.Size, &created)
	if err != nil {
		return f, fmt.Errorf("scan archived file: %w", err)
	}
	f.Kind = model.MediaKind(kind)
	f.CreatedAt, _ = time.Parse(timeLayout, created)
	return f, nil
}
