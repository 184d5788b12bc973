package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore implements Store using the local filesystem.
type FilesystemStore struct{}

func NewFilesystemStore() *FilesystemStore {
	return &FilesystemStore{}
}

func localPath(ref string) string {
	return strings.TrimPrefix(ref, fileScheme)
}

// Get reads the whole file named by ref.
func (f *FilesystemStore) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(localPath(ref))
}

// Put writes data to ref atomically and returns the path written.
func (f *FilesystemStore) Put(ctx context.Context, ref string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := localPath(ref)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return path, nil
}
