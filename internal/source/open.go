package source

import (
	"context"
	"io"
	"os"
)

// Opener resolves a source name to a readable stream.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Describe(name string) string
}

type FileOpener struct{}

func (FileOpener) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (FileOpener) Describe(name string) string {
	return name
}
