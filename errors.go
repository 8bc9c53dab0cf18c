package mp3meta

import (
	"github.com/simonhull/mp3meta/internal/types"
)

// OutOfBoundsError is returned when a read falls outside the file or the
// loaded window of a FileView.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is returned when the input cannot be decoded at all.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is returned in strict mode for the first warning.
type CorruptedFileError = types.CorruptedFileError

// Warning is a non-fatal issue recorded during decoding.
type Warning = types.Warning
