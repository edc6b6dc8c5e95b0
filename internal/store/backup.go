package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const backupDirName = "backups"

// Backup copies the raw stored collection to <dir>/backups/ideas-<ts>.json and
// returns the path. It returns "" and no error when nothing is stored yet.
func (s Store) Backup(ctx context.Context, now time.Time) (string, error) {
	kv, err := s.OpenKV(ctx)
	if err != nil {
		return "", err
	}
	defer kv.Close()

	b, ok, err := kv.Get(ctx, IdeasKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	dir := filepath.Join(s.Dir, backupDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("ideas-%s.json", now.UTC().Format("20060102T150405.000Z"))
	path := filepath.Join(dir, name)
	if err := atomicWriteFile(dir, name+".*.tmp", path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
