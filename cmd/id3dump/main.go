// Command id3dump prints the ID3 metadata of MP3 files as JSON.
//
// Usage:
//
//	id3dump [flags] <file.mp3>...
//
// Useful for checking what the decoder makes of a file, including the
// warnings it records for malformed tags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	flag "github.com/spf13/pflag"

	"github.com/simonhull/mp3meta"
)

// record is the JSON document printed per file.
type record struct {
	Path     string            `json:"path"`
	Metadata *mp3meta.Metadata `json:"metadata,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Pictures []string          `json:"written_pictures,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func main() {
	var (
		picturesDir    = flag.String("pictures", "", "write embedded pictures to `dir`")
		strict         = flag.Bool("strict", false, "fail on the first warning")
		noBasicInfo    = flag.Bool("no-basic-info", false, "skip MPEG stream analysis")
		verbose        = flag.BoolP("verbose", "v", false, "log decoder debug output to stderr")
		maxPictureSize = flag.Int("max-picture-size", 0, "skip pictures larger than `n` bytes (0 = no limit)")
		version        = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: id3dump [flags] <file.mp3>...\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		info := mp3meta.GetVersionInfo()
		fmt.Printf("id3dump %s (commit %s, built %s, %s)\n", info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := []mp3meta.Option{mp3meta.WithMaxPictureSize(*maxPictureSize)}
	if *strict {
		opts = append(opts, mp3meta.WithStrictParsing())
	}
	if *noBasicInfo {
		opts = append(opts, mp3meta.WithoutBasicInfo())
	}
	if *verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, mp3meta.WithLogger(slog.New(handler)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := false
	for _, path := range flag.Args() {
		rec := dump(ctx, path, *picturesDir, opts)
		if rec.Error != "" {
			failed = true
		}
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func dump(ctx context.Context, path, picturesDir string, opts []mp3meta.Option) record {
	rec := record{Path: path}

	m, err := mp3meta.OpenContext(ctx, path, opts...)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Metadata = m

	for _, w := range m.Warnings {
		rec.Warnings = append(rec.Warnings, w.String())
	}

	if picturesDir != "" {
		written, err := writePictures(picturesDir, path, m.Pictures)
		rec.Pictures = written
		if err != nil {
			rec.Error = err.Error()
		}
	}

	return rec
}

// writePictures saves each picture as <dir>/<file>-<n>.<ext>. The extension
// comes from the image bytes, falling back to the tag's MIME type.
func writePictures(dir, path string, pictures []mp3meta.Picture) ([]string, error) {
	if len(pictures) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create pictures dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var written []string
	for i, p := range pictures {
		name := filepath.Join(dir, fmt.Sprintf("%s-%d.%s", base, i+1, extension(p.Blob)))
		if err := os.WriteFile(name, p.Blob.Data, 0o644); err != nil {
			return written, fmt.Errorf("write picture: %w", err)
		}
		written = append(written, name)
	}
	return written, nil
}

func extension(b mp3meta.Blob) string {
	if kind, err := filetype.Match(b.Data); err == nil && kind != filetype.Unknown {
		return kind.Extension
	}
	if _, sub, ok := strings.Cut(b.MIMEType, "/"); ok && sub != "" {
		return sub
	}
	return "bin"
}
