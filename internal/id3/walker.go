package id3

import (
	"context"
	"errors"
	"log/slog"

	binutil "github.com/simonhull/mp3meta/internal/binary"
	"github.com/simonhull/mp3meta/internal/types"
)

const (
	// magicID3 is "ID3" as a 24-bit big-endian value.
	magicID3 = 0x494433

	tagHeaderSize = 10
	tagFooterSize = 10

	// blockSlack is loaded past a tag so the footer and the start of a
	// chained tag are in the window with it.
	blockSlack = 8192 + 3
)

// frameLayout describes the frame header for one major version.
type frameLayout struct {
	headerSize int64 // 6 for v2.2, 10 for v2.3+
	fieldWidth int64 // width of both the id and the size field
}

func layoutFor(version byte) frameLayout {
	if version <= 2 {
		return frameLayout{headerSize: 6, fieldWidth: 3}
	}
	return frameLayout{headerSize: 10, fieldWidth: 4}
}

// walker decodes ID3v2 tag occurrences into one Metadata record.
type walker struct {
	view   types.FileView
	meta   *types.Metadata
	logger *slog.Logger

	maxPictureSize int
}

// errTruncated ends the frame loop when a frame header lies outside the
// loaded data.
var errTruncated = errors.New("tag truncated")

// walkChain decodes the tag at offset and every tag chained directly after
// it. found reports whether the first occurrence was a valid tag.
func (w *walker) walkChain(ctx context.Context, offset int64) (found bool, err error) {
	for offset >= 0 {
		next, ok, err := w.walkOccurrence(ctx, offset)
		if err != nil {
			return found, err
		}
		if !ok {
			break
		}
		found = true
		offset = next
	}
	return found, nil
}

// walkOccurrence decodes one tag starting at its "ID3" signature. ok is
// false when no usable tag header is there; the record is then untouched.
// next is the offset of a tag chained after this one, or -1.
func (w *walker) walkOccurrence(ctx context.Context, offset int64) (next int64, ok bool, err error) {
	view := w.view

	if offset < view.Start() || offset+tagHeaderSize > view.End() {
		if err := view.ReadBlockOfSizeAt(ctx, tagHeaderSize+blockSlack, offset); err != nil {
			return -1, false, err
		}
	}

	header, ok := w.window(offset, tagHeaderSize)
	if !ok || binutil.Uint24(header[0:3]) != magicID3 {
		return -1, false, nil
	}

	version := header[3]
	if version < 2 || version > 4 {
		w.meta.Warn("id3v2", offset, "unsupported ID3v2 version: 2.%d", version)
		w.logger.DebugContext(ctx, "skipping ID3v2 tag", "offset", offset, "version", version)
		return -1, false, nil
	}

	flags, err := readMainFlags(view, offset)
	if err != nil {
		return -1, false, nil
	}
	if flags.invalidBits {
		w.meta.Warn("id3v2", offset, "reserved header flag bits set: 0x%02x", header[5])
		w.logger.DebugContext(ctx, "skipping ID3v2 tag", "offset", offset, "flags", header[5])
		return -1, false, nil
	}

	tagSize := int64(binutil.Synchsafe32(header[6:10]))

	if offset+tagSize+tagHeaderSize+3 > view.End() {
		if err := view.ReadBlockOfSizeAt(ctx, int(tagSize)+blockSlack, offset); err != nil {
			return -1, false, err
		}
	}

	w.logger.DebugContext(ctx, "found ID3v2 tag",
		"offset", offset, "version", version, "size", tagSize,
		"unsynchronized", flags.unsynchronized, "extended", flags.extended)

	cursor := offset + tagHeaderSize
	end := cursor + tagSize

	if flags.extended {
		cursor, err = w.skipExtendedHeader(cursor, version)
		if err != nil {
			w.meta.Warn("id3v2", cursor, "extended header: %v", err)
			return -1, true, nil
		}
	}

	cursor, err = w.walkFrames(ctx, cursor, end, version, flags)
	if err != nil {
		w.meta.Warn("id3v2", cursor, "%v", err)
	}
	// The frame loop stops short of trailing padding.
	cursor = max(cursor, end)

	if flags.footer {
		cursor += tagFooterSize
	}

	return w.findChained(cursor, layoutFor(version)), true, nil
}

// skipExtendedHeader returns the offset of the first frame. The ID3v2.4
// size is synchsafe and counts itself; the ID3v2.3 size is a plain integer
// that excludes its own 4 bytes.
func (w *walker) skipExtendedHeader(cursor int64, version byte) (int64, error) {
	b, ok := w.window(cursor, 4)
	if !ok {
		return cursor, errTruncated
	}

	if version == 3 {
		v, err := w.view.Uint32(cursor)
		if err != nil {
			return cursor, err
		}
		return cursor + int64(v) + 4, nil
	}
	return cursor + int64(binutil.Synchsafe32(b)), nil
}

// walkFrames runs the frame loop between cursor and end and returns the
// offset where it stopped.
func (w *walker) walkFrames(ctx context.Context, cursor, end int64, version byte, tag mainFlags) (int64, error) {
	layout := layoutFor(version)

	for cursor+layout.headerSize < end {
		if _, ok := w.window(cursor, int(layout.headerSize)); !ok {
			return cursor, errTruncated
		}

		id, err := w.readField(cursor, layout.fieldWidth)
		if err != nil {
			return cursor, err
		}
		cursor += layout.fieldWidth

		// Padding. Step over it one id width at a time.
		if id == 0 {
			continue
		}

		size, err := w.readFrameSize(cursor, version)
		if err != nil {
			return cursor, err
		}
		cursor += layout.fieldWidth

		flags, err := readFrameFlags(w.view, cursor, version)
		if err != nil {
			return cursor, err
		}
		if version > 2 {
			cursor += 2
		}

		if flags.dataLengthIndicator {
			b, ok := w.window(cursor, 4)
			if !ok {
				return cursor, errTruncated
			}
			size = int64(binutil.Synchsafe32(b))
			cursor += 4
		}

		flags.unsynchronized = flags.unsynchronized || tag.unsynchronized
		destuffed := flags.unsynchronized && !flags.dataLengthIndicator
		if destuffed {
			size = unsynchronizedSize(w.view.Block(), int(cursor-w.view.Start()), size)
		}

		data := w.span(cursor, size)
		if destuffed {
			data = destuff(data)
		}

		w.dispatch(ctx, &frame{
			data:           data,
			offset:         cursor,
			id:             id,
			flags:          flags,
			version:        version,
			maxPictureSize: w.maxPictureSize,
		})

		cursor += size
	}

	return cursor, nil
}

// dispatch hands a frame to its registered handler. Soft failures become
// warnings on the record.
func (w *walker) dispatch(ctx context.Context, f *frame) {
	name := frameName(f.id, f.version)

	h, ok := frameHandlers[f.id]
	if !ok {
		w.logger.DebugContext(ctx, "skipping unmapped frame", "frame", name, "offset", f.offset)
		return
	}

	if f.flags.encrypted || f.flags.compressed {
		w.meta.Warn("frame", f.offset, "%s: encrypted or compressed frame skipped", name)
		return
	}

	if err := h.decode(f, w.meta); err != nil {
		w.meta.Warn("frame", f.offset, "%s: %v", name, err)
		w.logger.DebugContext(ctx, "frame skipped", "frame", name, "offset", f.offset, "error", err)
	}
}

// findChained looks for another tag directly after cursor, stepping over
// zero words. It returns the tag offset or -1.
func (w *walker) findChained(cursor int64, layout frameLayout) int64 {
	for cursor+layout.headerSize < w.view.End() {
		word, err := w.view.Uint32(cursor)
		if err != nil {
			return -1
		}
		if word>>8 == magicID3 {
			return cursor
		}
		if word != 0 {
			return -1
		}
		cursor += 4
	}
	return -1
}

// readField reads a 3- or 4-byte big-endian value.
func (w *walker) readField(off, width int64) (uint32, error) {
	if width == 4 {
		return w.view.Uint32(off)
	}
	b, ok := w.window(off, 3)
	if !ok {
		return 0, errTruncated
	}
	return binutil.Uint24(b), nil
}

// readFrameSize reads the frame size: 24-bit in v2.2, plain 32-bit in
// v2.3 and synchsafe in v2.4.
func (w *walker) readFrameSize(off int64, version byte) (int64, error) {
	switch version {
	case 2:
		v, err := w.readField(off, 3)
		return int64(v), err
	case 3:
		v, err := w.view.Uint32(off)
		return int64(v), err
	default:
		b, ok := w.window(off, 4)
		if !ok {
			return 0, errTruncated
		}
		return int64(binutil.Synchsafe32(b)), nil
	}
}

// window returns n loaded bytes at off, or false if they are not all in
// the loaded window.
func (w *walker) window(off int64, n int) ([]byte, bool) {
	rel := off - w.view.Start()
	block := w.view.Block()
	if rel < 0 || rel+int64(n) > int64(len(block)) {
		return nil, false
	}
	return block[rel : rel+int64(n)], true
}

// span returns up to size loaded bytes at off, clipped to the window.
func (w *walker) span(off, size int64) []byte {
	rel := off - w.view.Start()
	block := w.view.Block()
	if rel < 0 || rel >= int64(len(block)) {
		return nil
	}
	end := rel + size
	if end > int64(len(block)) {
		end = int64(len(block))
	}
	return block[rel:end]
}
