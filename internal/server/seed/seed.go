// Package seed loads the item catalog from a JSON document stored in a
// local file or in an S3-compatible bucket.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/server/models"
)

// Source yields the raw catalog document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Importer stores a batch of items.
type Importer interface {
	Import(ctx context.Context, items []models.Item) (int, error)
}

type FileSource struct {
	Path string
}

func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(s.Path)
}

func (s FileSource) String() string { return "file://" + s.Path }

// ParseItems decodes a JSON array of {id,title,url}. Unknown fields are
// rejected so that typos in the document surface early.
func ParseItems(r io.Reader) ([]models.Item, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var items []models.Item
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// Run reads src and imports every item in it.
func Run(ctx context.Context, src Source, imp Importer) (int, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer rc.Close()

	items, err := ParseItems(rc)
	if err != nil {
		return 0, err
	}

	return imp.Import(ctx, items)
}
