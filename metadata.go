package mp3meta

import (
	binutil "github.com/simonhull/mp3meta/internal/binary"
	"github.com/simonhull/mp3meta/internal/id3"
	"github.com/simonhull/mp3meta/internal/types"
)

// Metadata is the decoded tag record of one file.
type Metadata = types.Metadata

// BasicInfo describes the audio stream.
type BasicInfo = types.BasicInfo

// Picture is an embedded image.
type Picture = types.Picture

// Blob is image data with its MIME type.
type Blob = types.Blob

// PictureKind is the ID3v2 picture type.
type PictureKind = types.PictureKind

// Picture kinds.
const (
	PictureOther             = types.PictureOther
	PictureIcon              = types.PictureIcon
	PictureOtherIcon         = types.PictureOtherIcon
	PictureFrontCover        = types.PictureFrontCover
	PictureBackCover         = types.PictureBackCover
	PictureLeaflet           = types.PictureLeaflet
	PictureMedia             = types.PictureMedia
	PictureLeadArtist        = types.PictureLeadArtist
	PictureArtist            = types.PictureArtist
	PictureConductor         = types.PictureConductor
	PictureBand              = types.PictureBand
	PictureComposer          = types.PictureComposer
	PictureLyricist          = types.PictureLyricist
	PictureRecordingLocation = types.PictureRecordingLocation
	PictureDuringRecording   = types.PictureDuringRecording
	PictureDuringPerformance = types.PictureDuringPerformance
	PictureVideoCapture      = types.PictureVideoCapture
	PictureBrightFish        = types.PictureBrightFish
	PictureIllustration      = types.PictureIllustration
	PictureBandLogotype      = types.PictureBandLogotype
	PicturePublisherLogotype = types.PicturePublisherLogotype
)

// Sentinels stored in numeric fields.
const (
	InvalidNumber = types.InvalidNumber
	UnknownCount  = types.UnknownCount
)

// FileView is the windowed byte source the decoder reads from. All reads
// are big-endian at absolute file offsets and must fall inside the window
// last loaded by ReadBlockOfSizeAt.
type FileView = types.FileView

// BlockView is the FileView returned by NewBlockView.
type BlockView = binutil.BlockView

// Demuxer supplies BasicInfo for a file.
type Demuxer = id3.Demuxer
