package format

import "github.com/gogpu/gputypes"

type (
	// Compressor is the 4-bit second-stage compressor tag stored in the high nibble of a
	// frame's type byte, and the per-chunk code stored in a compressor table.
	Compressor uint8
	// FormatID is the 4-bit texture format identifier stored in the low nibble of a
	// frame's type byte.
	FormatID uint8
	// TextureFormat is the API-level texture format constant reported to callers.
	TextureFormat uint32
)

const (
	CompressorNone    Compressor = 0xA // CompressorNone stores the payload verbatim.
	CompressorSnappy  Compressor = 0xB // CompressorSnappy stores a single Snappy block.
	CompressorComplex Compressor = 0xC // CompressorComplex stores independently compressed chunks.

	FormatIDRGBDXT1   FormatID = 0xB // FormatIDRGBDXT1 is the wire id of RGB DXT1 (BC1).
	FormatIDRGBADXT5  FormatID = 0xE // FormatIDRGBADXT5 is the wire id of RGBA DXT5 (BC3).
	FormatIDYCoCgDXT5 FormatID = 0xF // FormatIDYCoCgDXT5 is the wire id of scaled YCoCg DXT5.

	// TextureFormatRGBDXT1 equals GL_COMPRESSED_RGB_S3TC_DXT1_EXT.
	TextureFormatRGBDXT1 TextureFormat = 0x83F0
	// TextureFormatRGBADXT5 equals GL_COMPRESSED_RGBA_S3TC_DXT5_EXT.
	TextureFormatRGBADXT5 TextureFormat = 0x83F3
	// TextureFormatYCoCgDXT5 has no GL equivalent; the payload is DXT5 data holding
	// scaled YCoCg that needs a conversion shader after upload.
	TextureFormatYCoCgDXT5 TextureFormat = 0x01
)

func (c Compressor) String() string {
	switch c {
	case CompressorNone:
		return "None"
	case CompressorSnappy:
		return "Snappy"
	case CompressorComplex:
		return "Complex"
	default:
		return "Unknown"
	}
}

func (id FormatID) String() string {
	if tf, ok := TextureFormatForID(id); ok {
		return tf.String()
	}

	return "Unknown"
}

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBDXT1:
		return "RGB_DXT1"
	case TextureFormatRGBADXT5:
		return "RGBA_DXT5"
	case TextureFormatYCoCgDXT5:
		return "YCoCg_DXT5"
	default:
		return "Unknown"
	}
}

// TextureFormatForID maps a wire format identifier to its API constant.
// The second result is false for unknown identifiers.
func TextureFormatForID(id FormatID) (TextureFormat, bool) {
	switch id {
	case FormatIDRGBDXT1:
		return TextureFormatRGBDXT1, true
	case FormatIDRGBADXT5:
		return TextureFormatRGBADXT5, true
	case FormatIDYCoCgDXT5:
		return TextureFormatYCoCgDXT5, true
	default:
		return 0, false
	}
}

// IDForTextureFormat maps an API texture format constant to its wire identifier.
// The second result is false for unknown constants.
func IDForTextureFormat(f TextureFormat) (FormatID, bool) {
	switch f {
	case TextureFormatRGBDXT1:
		return FormatIDRGBDXT1, true
	case TextureFormatRGBADXT5:
		return FormatIDRGBADXT5, true
	case TextureFormatYCoCgDXT5:
		return FormatIDYCoCgDXT5, true
	default:
		return 0, false
	}
}

// PackType builds a frame type byte from a compressor (high nibble) and format id (low nibble).
func PackType(c Compressor, id FormatID) uint8 {
	return uint8(c)<<4 | uint8(id)&0x0F
}

// UnpackType splits a frame type byte into its compressor and format id nibbles.
func UnpackType(b uint8) (Compressor, FormatID) {
	return Compressor((b & 0xF0) >> 4), FormatID(b & 0x0F)
}

// IsValid reports whether f is one of the known texture formats.
func (f TextureFormat) IsValid() bool {
	_, ok := IDForTextureFormat(f)
	return ok
}

// IsYCoCg reports whether the decoded payload stores scaled YCoCg rather than RGB(A).
func (f TextureFormat) IsYCoCg() bool {
	return f == TextureFormatYCoCgDXT5
}

// BlockSize returns the number of bytes used by one 4x4 texel block, or 0 for unknown formats.
func (f TextureFormat) BlockSize() int {
	switch f {
	case TextureFormatRGBDXT1:
		return 8
	case TextureFormatRGBADXT5, TextureFormatYCoCgDXT5:
		return 16
	default:
		return 0
	}
}

// DecodedSize returns the size in bytes of a decoded payload for a width x height image.
// Dimensions are rounded up to whole 4x4 blocks. It returns 0 for unknown formats or
// non-positive dimensions.
func (f TextureFormat) DecodedSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}

	return ((width + 3) / 4) * ((height + 3) / 4) * f.BlockSize()
}

// GPUFormat returns the block-compressed GPU texture format to upload the decoded
// payload with. YCoCg payloads are BC3 data and upload as BC3; the color conversion
// happens in a shader.
func (f TextureFormat) GPUFormat() gputypes.TextureFormat {
	switch f {
	case TextureFormatRGBDXT1:
		return gputypes.TextureFormatBC1RGBAUnorm
	case TextureFormatRGBADXT5, TextureFormatYCoCgDXT5:
		return gputypes.TextureFormatBC3RGBAUnorm
	default:
		return gputypes.TextureFormatUndefined
	}
}
