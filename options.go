package mp3meta

import (
	"log/slog"

	"github.com/simonhull/mp3meta/internal/id3"
	"github.com/simonhull/mp3meta/internal/mpeg"
)

// Option configures decoding.
//
// Options use the functional options pattern:
//
//	m, err := mp3meta.Open("song.mp3",
//	    mp3meta.WithStrictParsing(),
//	    mp3meta.WithLogger(slog.Default()),
//	)
type Option func(*decodeOptions)

// decodeOptions holds configuration for one decode.
type decodeOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	maxPictureSize int  // Maximum picture size in bytes (0 = no limit)
	headScanSize   int  // Bytes searched for an ID3v2 signature
	logger         *slog.Logger
	demuxer        Demuxer // nil skips BasicInfo
}

// defaultOptions returns the default configuration.
func defaultOptions() *decodeOptions {
	return &decodeOptions{
		headScanSize: id3.DefaultHeadScanSize,
		logger:       slog.New(slog.DiscardHandler),
		demuxer:      mpeg.Demuxer{},
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, decoding continues past unknown text encodings, unusable
// pictures and rejected tag headers, returning warnings alongside the
// decoded data. With strict parsing the first warning is returned as a
// *CorruptedFileError instead.
func WithStrictParsing() Option {
	return func(o *decodeOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings discards all warnings. Metadata.Warnings will always
// be empty.
func WithIgnoreWarnings() Option {
	return func(o *decodeOptions) {
		o.ignoreWarnings = true
	}
}

// WithMaxPictureSize sets a maximum size for embedded pictures.
//
// Pictures larger than this (in bytes) are skipped with a warning.
// Default is 0 (no limit).
//
// Example:
//
//	// Limit pictures to 10MB
//	m, err := mp3meta.Open("song.mp3",
//	    mp3meta.WithMaxPictureSize(10*1024*1024),
//	)
func WithMaxPictureSize(bytes int) Option {
	return func(o *decodeOptions) {
		o.maxPictureSize = bytes
	}
}

// WithLogger sets the logger for debug output. The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *decodeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDemuxer replaces the MPEG frame-header reader used for BasicInfo.
func WithDemuxer(d Demuxer) Option {
	return func(o *decodeOptions) {
		o.demuxer = d
	}
}

// WithoutBasicInfo skips stream analysis; Metadata.BasicInfo stays nil.
func WithoutBasicInfo() Option {
	return func(o *decodeOptions) {
		o.demuxer = nil
	}
}

// WithHeadScanSize sets how many bytes from the start of the file are
// searched for an ID3v2 tag. Default is 16384.
func WithHeadScanSize(n int) Option {
	return func(o *decodeOptions) {
		if n > 0 {
			o.headScanSize = n
		}
	}
}
