// Package local implements ObjectStorage on the local filesystem, for
// development and single-node deployments.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"invoxd/internal/port"
)

type localStorage struct {
	baseDir string
}

// NewLocalStorage creates a filesystem-backed ObjectStorage rooted at baseDir.
func NewLocalStorage(baseDir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving upload dir: %w", err)
	}
	return &localStorage{baseDir: abs}, nil
}

// resolve maps a key to a path under baseDir, rejecting traversal outside it.
func (l *localStorage) resolve(key string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if !strings.HasPrefix(path, l.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}

func (l *localStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	path, err := l.resolve(input.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("local upload mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("local upload create: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, input.Body); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("local upload write: %w", err)
	}
	return &port.UploadOutput{Location: path}, nil
}

func (l *localStorage) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("local delete: %w", err)
	}
	return nil
}

// GetPresignedURL returns a file:// URL; local storage has no notion of
// expiry, the parameter exists to satisfy the interface.
func (l *localStorage) GetPresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("local presign: %w", err)
	}
	return "file://" + path, nil
}
