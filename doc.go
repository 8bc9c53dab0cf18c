// Package mp3meta reads ID3 tag metadata from MP3 files.
//
// Both tag containers an MP3 file may carry are understood: the versioned,
// frame-based ID3v2 tag at the start of the file (major versions 2, 3 and
// 4, including chained tags) and the 128-byte ID3v1 trailer, which is only
// consulted when no ID3v2 tag decodes.
//
// # Quick Start
//
//	m, err := mp3meta.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s - %s\n", m.Artist, m.Title)
//	if m.BasicInfo != nil {
//		fmt.Println(m.BasicInfo) // 44.1kHz stereo 3:25
//	}
//
// # Byte Sources
//
// The decoder reads through a FileView, a window over the file that is
// moved with ReadBlockOfSizeAt. NewBlockView adapts any io.ReaderAt; other
// sources (HTTP range requests, memory-mapped files) can implement
// FileView directly and be passed to Decode.
//
// # Decoded Fields
//
// Text frames TIT2, TPE1, TALB, TPE2, TSO2, TMOO, TRCK, TPOS, TCMP, TBPM,
// TYER, TDRC and TCON (and their ID3v2.2 equivalents), APIC/PIC pictures
// and iTunes gapless information from COMM frames. Other frames are
// skipped. When several tags are present, later tags overwrite scalar
// fields, genres accumulate and pictures are appended.
//
// # Error Handling
//
// Malformed input is not an error:
//
//   - an unknown text encoding or unusable picture skips that frame
//   - an unsupported version or reserved header flag skips that tag
//   - a tag cut short by the end of the file keeps what was decoded
//
// Each of these is recorded in Metadata.Warnings. Errors are returned only
// for I/O failures and cancellation, or for the first warning when
// WithStrictParsing is used.
//
// # Concurrency
//
// A decode owns its FileView and Metadata; independent files can be
// decoded in parallel. OpenMany does this with bounded concurrency.
package mp3meta
