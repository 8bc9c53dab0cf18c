package id3

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/simonhull/mp3meta/internal/types"
)

// Default scan sizes.
const (
	DefaultHeadScanSize  = 16384
	DefaultDemuxScanSize = 262144
)

// Demuxer reports stream properties of the audio data in a view. maxScan
// bounds how many bytes from the start of the file it may load.
type Demuxer interface {
	Demux(ctx context.Context, view types.FileView, maxScan int) (*types.BasicInfo, error)
}

// Options configure a Decoder. Zero values select the defaults.
type Options struct {
	Logger         *slog.Logger
	Demuxer        Demuxer // nil skips stream info
	HeadScanSize   int
	DemuxScanSize  int
	MaxPictureSize int // 0 means unlimited
}

// Decoder extracts tag metadata from MP3 files. It holds no per-file state
// and may be shared between goroutines.
type Decoder struct {
	opts Options
}

// NewDecoder returns a Decoder with defaults applied to opts.
func NewDecoder(opts Options) *Decoder {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.HeadScanSize <= 0 {
		opts.HeadScanSize = DefaultHeadScanSize
	}
	if opts.DemuxScanSize <= 0 {
		opts.DemuxScanSize = DefaultDemuxScanSize
	}
	return &Decoder{opts: opts}
}

var id3Magic = []byte("ID3")

// Decode reads every tag in view into a new Metadata record.
//
// Malformed tags and frames are reported as warnings on the record. The
// returned error is non-nil only when the view fails to load a block or ctx
// is done.
func (d *Decoder) Decode(ctx context.Context, view types.FileView) (*types.Metadata, error) {
	m := &types.Metadata{}
	log := d.opts.Logger

	if d.opts.Demuxer != nil {
		info, err := d.opts.Demuxer.Demux(ctx, view, d.opts.DemuxScanSize)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			m.Warn("demux", 0, "stream info unavailable: %v", err)
			log.DebugContext(ctx, "demux failed", "error", err)
		default:
			m.BasicInfo = info
		}
	}

	size := view.Size()
	if size == 0 {
		return m, nil
	}

	found, err := d.scanHead(ctx, view, m)
	if err != nil {
		return nil, err
	}
	if found {
		return m, nil
	}

	log.DebugContext(ctx, "no ID3v2 tag, reading ID3v1 trailer")
	found, err = readLegacy(ctx, view, m)
	if err != nil {
		return nil, err
	}
	if !found {
		log.DebugContext(ctx, "no ID3v1 tag")
	}
	return m, nil
}

// scanHead looks for "ID3" in the first bytes of the file and walks the
// first occurrence that decodes.
func (d *Decoder) scanHead(ctx context.Context, view types.FileView, m *types.Metadata) (bool, error) {
	headSize := int64(d.opts.HeadScanSize)
	if size := view.Size(); headSize > size {
		headSize = size
	}

	if err := view.ReadBlockOfSizeAt(ctx, int(headSize), 0); err != nil {
		return false, err
	}
	// The walker replaces the window; keep a handle on the head bytes.
	head := view.Block()

	w := &walker{
		view:           view,
		meta:           m,
		logger:         d.opts.Logger,
		maxPictureSize: d.opts.MaxPictureSize,
	}

	for p := 0; p+3 < len(head); {
		i := bytes.Index(head[p:], id3Magic)
		if i < 0 {
			break
		}
		p += i

		found, err := w.walkChain(ctx, int64(p))
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
		p++
	}
	return false, nil
}
