package source

import (
	"context"
	"fmt"
	"os"

	"github.com/behzade/storefront/internal/domain"
)

// File reads a static JSON or YAML catalog document on every call.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return "file" }

func (f *File) Path() string { return f.path }

func (f *File) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	products, err := DecodeCatalog(data, FormatForPath(f.path))
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", f.path, err)
	}
	return products, nil
}
