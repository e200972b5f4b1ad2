package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore stores raw bytes and returns a durable public URL. Injected as a
// capability so the chat core can be tested against fakes.
type BlobStore interface {
	Put(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
}

// LocalBlobStore writes under rootDir; the server exposes rootDir statically
// at /uploads, so the returned URL is {baseURL}/uploads/{bucket}/{path}.
type LocalBlobStore struct {
	rootDir string
	baseURL string
}

func NewLocalBlobStore(rootDir, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{
		rootDir: rootDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *LocalBlobStore) Put(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	// Keys come in as roomId/senderId/ts-name; reject anything escaping the root.
	cleaned := filepath.Clean("/" + path)
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid blob path: %s", path)
	}

	fullPath := filepath.Join(s.rootDir, bucket, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s%s", s.baseURL, bucket, cleaned), nil
}
