package binary

import (
	"context"
	"encoding/binary"

	"github.com/simonhull/mp3meta/internal/types"
)

// BlockView is a types.FileView over an io.ReaderAt. It keeps exactly one
// loaded block in memory; ReadBlockOfSizeAt replaces it.
type BlockView struct {
	sr    *SafeReader
	block []byte
	start int64
}

var _ types.FileView = (*BlockView)(nil)

// NewBlockView creates a view with an empty window at offset 0.
func NewBlockView(sr *SafeReader) *BlockView {
	return &BlockView{sr: sr}
}

// Block returns the currently loaded bytes. The slice must not be modified.
func (v *BlockView) Block() []byte {
	return v.block
}

// Start returns the absolute file offset of Block()[0].
func (v *BlockView) Start() int64 {
	return v.start
}

// End returns the absolute file offset one past the loaded window.
func (v *BlockView) End() int64 {
	return v.start + int64(len(v.block))
}

// Size returns the total file size.
func (v *BlockView) Size() int64 {
	return v.sr.Size()
}

// Path returns the file path used in error messages.
func (v *BlockView) Path() string {
	return v.sr.Path()
}

// ReadBlockOfSizeAt loads size bytes starting at off, clamped to the end of
// the file. It fails only when off lies outside the file, the context is
// done, or the underlying read fails.
func (v *BlockView) ReadBlockOfSizeAt(ctx context.Context, size int, off int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if off < 0 || off >= v.sr.Size() {
		return &types.OutOfBoundsError{
			Path:   v.sr.Path(),
			What:   "block",
			Offset: off,
			Length: size,
			Size:   v.sr.Size(),
		}
	}

	n := int64(size)
	if remaining := v.sr.Size() - off; n > remaining {
		n = remaining
	}

	buf := make([]byte, n)
	if err := v.sr.ReadAt(buf, off, "block"); err != nil {
		return err
	}

	v.block = buf
	v.start = off
	return nil
}

// Uint8 reads a byte at an absolute offset inside the loaded window.
func (v *BlockView) Uint8(off int64) (uint8, error) {
	return readWindow[uint8](v, off)
}

// Uint16 reads a big-endian uint16 at an absolute offset inside the loaded window.
func (v *BlockView) Uint16(off int64) (uint16, error) {
	return readWindow[uint16](v, off)
}

// Uint32 reads a big-endian uint32 at an absolute offset inside the loaded window.
func (v *BlockView) Uint32(off int64) (uint32, error) {
	return readWindow[uint32](v, off)
}

func readWindow[T uint8 | uint16 | uint32](v *BlockView, off int64) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	}

	rel := off - v.start
	if rel < 0 || rel+int64(size) > int64(len(v.block)) {
		return zero, &types.OutOfBoundsError{
			Path:   v.sr.Path(),
			What:   "loaded window",
			Offset: off,
			Length: size,
			Size:   v.End(),
		}
	}

	buf := v.block[rel : rel+int64(size)]

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	}

	return val, nil
}
