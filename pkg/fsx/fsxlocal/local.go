package fsxlocal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem on local disk
type LocalFileSystem struct {
	basePath string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

// NewLocalFileSystem roots a file system at basePath, creating it if needed.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fsx.Fail(fsx.ErrInit, err, basePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fsx.Fail(fsx.ErrInit, err, basePath)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// BasePath is the absolute root directory.
func (l *LocalFileSystem) BasePath() string { return l.basePath }

// fullPath keeps every path inside basePath.
func (l *LocalFileSystem) fullPath(path string) string {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	return filepath.Join(l.basePath, clean)
}

func (l *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.fullPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.NotFound(path)
		}
		return nil, fsx.Fail(fsx.ErrRead, err, path)
	}
	return data, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(l.fullPath(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fsx.Fail(fsx.ErrRead, err, path)
}

func (l *LocalFileSystem) List(_ context.Context, dir string) ([]fsx.FileInfo, error) {
	entries, err := os.ReadDir(l.fullPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.NotFound(dir)
		}
		return nil, fsx.Fail(fsx.ErrList, err, dir)
	}

	out := make([]fsx.FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, fsx.FileInfo{
			Name:    e.Name(),
			Path:    l.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   e.IsDir(),
		})
	}
	return out, nil
}

func (l *LocalFileSystem) WriteFile(_ context.Context, path string, data []byte) error {
	full := l.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.Fail(fsx.ErrWrite, err, path)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.Fail(fsx.ErrWrite, err, path)
	}
	return nil
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	if err := os.Remove(l.fullPath(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fsx.NotFound(path)
		}
		return fsx.Fail(fsx.ErrDelete, err, path)
	}
	return nil
}

func (l *LocalFileSystem) DeleteDir(_ context.Context, dir string) error {
	full := l.fullPath(dir)
	if full == l.basePath {
		return fsx.Fail(fsx.ErrDelete, errors.New("refusing to delete base path"), dir)
	}
	if err := os.RemoveAll(full); err != nil {
		return fsx.Fail(fsx.ErrDelete, err, dir)
	}
	return nil
}

// Join joins elements with forward slashes regardless of OS.
func (l *LocalFileSystem) Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if e = strings.Trim(e, "/"); e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, "/")
}
