package types

import "context"

// FileView is a random-access byte source with one loaded window.
//
// Uint8, Uint16 and Uint32 read big-endian values at absolute file offsets
// and must be satisfied from the loaded window; anything else returns an
// *OutOfBoundsError. ReadBlockOfSizeAt replaces the window with at least
// size bytes starting at off (fewer at the end of the file) and blocks until
// they are available.
type FileView interface {
	Uint8(off int64) (uint8, error)
	Uint16(off int64) (uint16, error)
	Uint32(off int64) (uint32, error)

	// Block returns the loaded bytes; Block()[0] is at file offset Start().
	Block() []byte
	Start() int64
	End() int64

	ReadBlockOfSizeAt(ctx context.Context, size int, off int64) error

	// Size returns the total file length.
	Size() int64
}
