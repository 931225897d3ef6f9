package ports

import (
	"context"
	"io"

	"logireport/domain/dataset"
)

// DatasetLoader turns uploaded file bytes into an in-memory table.
// Implementations decide the format from the filename and must reject
// unsupported extensions before reading src.
type DatasetLoader interface {
	ReadData(ctx context.Context, filename string, src io.Reader) (*dataset.Dataset, error)
}
