// Package publish writes generated JSON files. Writers to a directory are
// serialized across processes with a lock file and readers never observe a
// partial file.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockFileName       = ".tlstory.lock"
	defaultLockTimeout = 10 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// Writer publishes JSON files atomically.
type Writer struct {
	logger      *slog.Logger
	lockTimeout time.Duration
}

// NewWriter creates a new writer
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger, lockTimeout: defaultLockTimeout}
}

// Encode renders v as two-space indented JSON with HTML characters left
// unescaped, so slide text survives as written.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v and replaces path with it. The parent directory is
// created when missing. Returns the path written.
func (w *Writer) WriteJSON(ctx context.Context, path string, v any) (string, error) {
	data, err := Encode(v)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, w.lockTimeout)
	defer cancel()

	// one lock per directory so timestamped backups do not leave lock files behind
	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire lock for %s: %w", path, err)
	}
	if !locked {
		return "", fmt.Errorf("acquire lock for %s: held by another writer", path)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release publish lock", "path", path, "error", err)
		}
	}()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace %s: %w", path, err)
	}

	w.logger.Debug("json file published", "path", path, "bytes", len(data))
	return path, nil
}
