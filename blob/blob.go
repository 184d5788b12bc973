package blob

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/awantoch/eepromgen/logger"
)

const (
	fileScheme = "file://"
	s3Scheme   = "s3://"
)

// Source reads the raw bytes behind a reference (a local path, file:// URL
// or s3://bucket/key URL).
type Source interface {
	Get(ctx context.Context, ref string) ([]byte, error)
}

// Store is a Source that can also write blobs back.
type Store interface {
	Source
	Put(ctx context.Context, ref string, data []byte) (string, error)
}

// See filesystem.go and s3.go for driver implementations.

// Config selects how remote references are resolved.
type Config struct {
	Region string
}

// IsS3 reports whether ref names an S3 object.
func IsS3(ref string) bool {
	return strings.HasPrefix(ref, s3Scheme)
}

// Name returns the final path element of ref, whatever its scheme.
func Name(ref string) string {
	if IsS3(ref) {
		_, key, err := ParseS3URL(ref)
		if err != nil {
			return ""
		}
		return path.Base(key)
	}
	return filepath.Base(strings.TrimPrefix(ref, fileScheme))
}

// MultiStore routes references to the filesystem or S3 by scheme. The S3
// client is only built when the first s3:// reference shows up.
type MultiStore struct {
	fs *FilesystemStore

	mu      sync.Mutex
	s3      Store
	newS3   func(ctx context.Context) (Store, error)
	s3Error error
}

// NewDefaultStore returns a MultiStore backed by the local filesystem and,
// on demand, S3 in cfg.Region (or the AWS default region when empty).
func NewDefaultStore(cfg *Config) *MultiStore {
	region := ""
	if cfg != nil {
		region = cfg.Region
	}
	return &MultiStore{
		fs: NewFilesystemStore(),
		newS3: func(ctx context.Context) (Store, error) {
			return NewS3Store(ctx, region)
		},
	}
}

func (m *MultiStore) remote(ctx context.Context) (Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s3 == nil && m.s3Error == nil {
		logger.Debug("initializing S3 blob store")
		m.s3, m.s3Error = m.newS3(ctx)
	}
	return m.s3, m.s3Error
}

func (m *MultiStore) Get(ctx context.Context, ref string) ([]byte, error) {
	if IsS3(ref) {
		s, err := m.remote(ctx)
		if err != nil {
			return nil, err
		}
		return s.Get(ctx, ref)
	}
	return m.fs.Get(ctx, ref)
}

func (m *MultiStore) Put(ctx context.Context, ref string, data []byte) (string, error) {
	if IsS3(ref) {
		s, err := m.remote(ctx)
		if err != nil {
			return "", err
		}
		return s.Put(ctx, ref, data)
	}
	return m.fs.Put(ctx, ref, data)
}
