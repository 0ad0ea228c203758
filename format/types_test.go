package format

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
)

func TestTextureFormatTables(t *testing.T) {
	pairs := []struct {
		id FormatID
		tf TextureFormat
	}{
		{FormatIDRGBDXT1, TextureFormatRGBDXT1},
		{FormatIDRGBADXT5, TextureFormatRGBADXT5},
		{FormatIDYCoCgDXT5, TextureFormatYCoCgDXT5},
	}

	for _, p := range pairs {
		t.Run(p.tf.String(), func(t *testing.T) {
			tf, ok := TextureFormatForID(p.id)
			require.True(t, ok)
			require.Equal(t, p.tf, tf)

			id, ok := IDForTextureFormat(p.tf)
			require.True(t, ok)
			require.Equal(t, p.id, id)
			require.True(t, p.tf.IsValid())
		})
	}

	t.Run("Unknown identifier", func(t *testing.T) {
		for _, id := range []FormatID{0x0, 0x1, 0xA, 0xC, 0xD} {
			tf, ok := TextureFormatForID(id)
			require.False(t, ok)
			require.Zero(t, tf)
		}
	})

	t.Run("Unknown constant", func(t *testing.T) {
		id, ok := IDForTextureFormat(0x83F1)
		require.False(t, ok)
		require.Zero(t, id)
		require.False(t, TextureFormat(0).IsValid())
	})
}

func TestPackType(t *testing.T) {
	tests := []struct {
		c    Compressor
		id   FormatID
		want uint8
	}{
		{CompressorNone, FormatIDRGBDXT1, 0xAB},
		{CompressorSnappy, FormatIDRGBDXT1, 0xBB},
		{CompressorComplex, FormatIDRGBDXT1, 0xCB},
		{CompressorNone, FormatIDRGBADXT5, 0xAE},
		{CompressorSnappy, FormatIDRGBADXT5, 0xBE},
		{CompressorComplex, FormatIDRGBADXT5, 0xCE},
		{CompressorNone, FormatIDYCoCgDXT5, 0xAF},
		{CompressorSnappy, FormatIDYCoCgDXT5, 0xBF},
		{CompressorComplex, FormatIDYCoCgDXT5, 0xCF},
	}

	for _, tt := range tests {
		b := PackType(tt.c, tt.id)
		require.Equal(t, tt.want, b)

		c, id := UnpackType(b)
		require.Equal(t, tt.c, c)
		require.Equal(t, tt.id, id)
	}
}

func TestStrings(t *testing.T) {
	require.Equal(t, "None", CompressorNone.String())
	require.Equal(t, "Snappy", CompressorSnappy.String())
	require.Equal(t, "Complex", CompressorComplex.String())
	require.Equal(t, "Unknown", Compressor(0x3).String())

	require.Equal(t, "RGB_DXT1", FormatIDRGBDXT1.String())
	require.Equal(t, "YCoCg_DXT5", TextureFormatYCoCgDXT5.String())
	require.Equal(t, "Unknown", FormatID(0x2).String())
	require.Equal(t, "Unknown", TextureFormat(7).String())
}

func TestTextureFormat_Sizes(t *testing.T) {
	require.Equal(t, 8, TextureFormatRGBDXT1.BlockSize())
	require.Equal(t, 16, TextureFormatRGBADXT5.BlockSize())
	require.Equal(t, 16, TextureFormatYCoCgDXT5.BlockSize())
	require.Equal(t, 0, TextureFormat(9).BlockSize())

	t.Run("Whole blocks", func(t *testing.T) {
		require.Equal(t, 1920*1080/16*8, TextureFormatRGBDXT1.DecodedSize(1920, 1080))
		require.Equal(t, 1920*1080, TextureFormatRGBADXT5.DecodedSize(1920, 1080))
	})

	t.Run("Partial blocks round up", func(t *testing.T) {
		require.Equal(t, 16, TextureFormatRGBADXT5.DecodedSize(1, 1))
		require.Equal(t, 4*8, TextureFormatRGBDXT1.DecodedSize(5, 5))
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		require.Equal(t, 0, TextureFormatRGBDXT1.DecodedSize(0, 10))
		require.Equal(t, 0, TextureFormatRGBDXT1.DecodedSize(10, -1))
	})
}

func TestTextureFormat_GPUFormat(t *testing.T) {
	require.Equal(t, gputypes.TextureFormatBC1RGBAUnorm, TextureFormatRGBDXT1.GPUFormat())
	require.Equal(t, gputypes.TextureFormatBC3RGBAUnorm, TextureFormatRGBADXT5.GPUFormat())
	require.Equal(t, gputypes.TextureFormatBC3RGBAUnorm, TextureFormatYCoCgDXT5.GPUFormat())
	require.Equal(t, gputypes.TextureFormatUndefined, TextureFormat(0).GPUFormat())

	require.True(t, TextureFormatYCoCgDXT5.IsYCoCg())
	require.False(t, TextureFormatRGBADXT5.IsYCoCg())
}
