// Package blobstore keeps uploaded media on the local filesystem. Files are
// written under Root and served from BaseURL.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"mfgorders/internal/core/ports"
	"mfgorders/internal/pkg/errs"

	"github.com/google/uuid"
)

type Config struct {
	Root    string
	BaseURL string
	// MaxBytes rejects larger files. Zero disables the limit.
	MaxBytes int64
}

var errTooLarge = errors.New("file exceeds size limit")

type FilesystemStore struct {
	cfg Config
}

func NewFilesystemStore(cfg Config) (*FilesystemStore, error) {
	if strings.TrimSpace(cfg.Root) == "" {
		return nil, errs.NewValueIsRequiredError("blob root")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("blob base url", err)
	}
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &FilesystemStore{cfg: cfg}, nil
}

// Upload stores the file under a fresh name that keeps the original
// extension. Any failure is reported as an upstream failure naming the file.
func (s *FilesystemStore) Upload(ctx context.Context, file ports.Upload) (string, error) {
	name, err := s.put(ctx, file)
	if err != nil {
		return "", errs.NewUpstreamFailureError(file.FileName, err)
	}
	return s.cfg.BaseURL + "/" + name, nil
}

// Delete removes a file stored by Upload. URLs outside BaseURL are rejected.
func (s *FilesystemStore) Delete(ctx context.Context, publicURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, ok := strings.CutPrefix(publicURL, s.cfg.BaseURL+"/")
	if !ok || name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return errs.NewValueIsInvalidError("blob url")
	}
	err := os.Remove(filepath.Join(s.cfg.Root, filepath.FromSlash(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FilesystemStore) put(ctx context.Context, file ports.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file.Body == nil {
		return "", errors.New("empty body")
	}
	if s.cfg.MaxBytes > 0 && file.Size > s.cfg.MaxBytes {
		return "", errTooLarge
	}

	ext := strings.ToLower(path.Ext(filepath.Base(file.FileName)))
	dir := uuid.NewString()[:2]
	name := path.Join(dir, uuid.NewString()+ext)
	if err := os.MkdirAll(filepath.Join(s.cfg.Root, dir), 0o755); err != nil {
		return "", err
	}

	target := filepath.Join(s.cfg.Root, filepath.FromSlash(name))
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	body := file.Body
	if s.cfg.MaxBytes > 0 {
		body = io.LimitReader(body, s.cfg.MaxBytes+1)
	}
	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && s.cfg.MaxBytes > 0 && written > s.cfg.MaxBytes {
		err = errTooLarge
	}
	if err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}
