package mp3meta

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/mp3meta/internal/binary"
	"github.com/simonhull/mp3meta/internal/id3"
)

// Decode reads the ID3v2 and ID3v1 tags visible through view.
//
// Malformed tags do not fail the decode: the offending frame or tag is
// skipped and a Warning is recorded on the result. An error is returned
// only when the view cannot load a block, ctx is done, or strict parsing
// is enabled and a warning was recorded.
//
// Example:
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//	st, _ := f.Stat()
//
//	m, err := mp3meta.Decode(ctx, mp3meta.NewBlockView(f, st.Size(), f.Name()))
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", m.Artist, m.Title)
func Decode(ctx context.Context, view FileView, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return decode(ctx, view, pathOf(view), options)
}

func decode(ctx context.Context, view FileView, path string, options *decodeOptions) (*Metadata, error) {
	logger := options.logger.With("path", path)

	dec := id3.NewDecoder(id3.Options{
		Logger:         logger,
		Demuxer:        options.demuxer,
		HeadScanSize:   options.headScanSize,
		MaxPictureSize: options.maxPictureSize,
	})

	m, err := dec.Decode(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if options.strictParsing && len(m.Warnings) > 0 {
		w := m.Warnings[0]
		return nil, &CorruptedFileError{Path: path, Offset: w.Offset, Reason: w.Message}
	}

	if options.ignoreWarnings {
		m.Warnings = nil
	}

	for _, w := range m.Warnings {
		logger.DebugContext(ctx, "decode warning", "stage", w.Stage, "offset", w.Offset, "message", w.Message)
	}

	return m, nil
}

// pathOf returns the path a view was opened from, if it knows one.
func pathOf(view FileView) string {
	if p, ok := view.(interface{ Path() string }); ok {
		return p.Path()
	}
	return "<view>"
}

// NewBlockView returns a FileView reading from r, which holds size bytes.
// path is used in error messages only.
func NewBlockView(r io.ReaderAt, size int64, path string) *BlockView {
	return binutil.NewBlockView(binutil.NewSafeReader(r, size, path))
}

// Open decodes the tags of the MP3 file at path.
//
// Options can be provided to customize decoding:
//
//	m, err := mp3meta.Open("song.mp3",
//	    mp3meta.WithStrictParsing(),
//	    mp3meta.WithMaxPictureSize(4<<20),
//	)
func Open(path string, opts ...Option) (*Metadata, error) {
	return OpenContext(context.Background(), path, opts...)
}

// OpenContext is Open with a context that bounds every block read.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, &UnsupportedFormatError{Path: path, Reason: "not a regular file"}
	}

	return decode(ctx, NewBlockView(f, stat.Size(), path), path, options)
}

// OpenMany decodes multiple files concurrently.
//
// Files are decoded in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. The first
// failure cancels the remaining decodes and is returned.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	records, err := mp3meta.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, m := range records {
//		fmt.Printf("%s: %s - %s\n", paths[i], m.Artist, m.Title)
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Metadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			m, err := OpenContext(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
