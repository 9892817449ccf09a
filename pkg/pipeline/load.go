package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/shelfview/pkg/library"
	"github.com/matzehuels/shelfview/pkg/observability"
)

// Load reads a library file, choosing the decoder from its extension.
func (r *Runner) Load(ctx context.Context, path string) (library.Library, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	lib, err := library.Load(path)
	hooks.OnLoadComplete(ctx, path, lib.BookCount(), time.Since(start), err)
	if err != nil {
		return library.Library{}, err
	}

	r.Logger.Info("loaded library",
		"path", path,
		"shelves", len(lib.Shelves),
		"books", lib.BookCount())
	return lib, nil
}
