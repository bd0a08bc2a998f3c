package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Object is an opened stored file. Callers must close Body.
type Object struct {
	Name    string
	Size    int64
	ModTime time.Time
	Body    io.ReadSeekCloser
}

// FileStore persists uploaded bytes under generated unique names.
type FileStore interface {
	Store(ctx context.Context, r io.Reader, originalName string) (string, error)
	Load(ctx context.Context, name string) (*Object, error)
	Delete(ctx context.Context, name string) error
}
