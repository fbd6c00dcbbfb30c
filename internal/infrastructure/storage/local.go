package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

const (
	defaultUploadDir = "uploads"
	// nameAttempts bounds how many later timestamps Put tries when two uploads
	// with the same base name land in the same millisecond.
	nameAttempts = 16
)

// LocalStore keeps assets as plain files in one directory.
type LocalStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore creates dir when missing. An empty dir defaults to "uploads".
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		dir = defaultUploadDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

func (s *LocalStore) Put(ctx context.Context, u *domain.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	at := s.now()
	var (
		name string
		f    *os.File
		err  error
	)
	for i := 0; i < nameAttempts; i++ {
		name = assetName(at.Add(time.Duration(i)*time.Millisecond), u.Filename)
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}

	if _, err := io.Copy(f, u.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close asset: %w", err)
	}

	return name, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) (*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName(ref) {
		return nil, domain.ErrAssetNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("open asset: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat asset: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, domain.ErrAssetNotFound
	}

	return &domain.Asset{
		Name:        ref,
		ContentType: contentTypeFor(ref),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		Content:     f,
	}, nil
}
