package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/hap/errs"
	"github.com/arloliu/hap/format"
)

// dxtLikePayload builds data resembling DXT blocks: a handful of repeated 8-byte blocks.
func dxtLikePayload(size int) []byte {
	blocks := [][]byte{
		{0x00, 0xF8, 0x00, 0xF8, 0x00, 0x00, 0x00, 0x00},
		{0xE0, 0x07, 0x1F, 0x00, 0x55, 0x55, 0x55, 0x55},
		{0xFF, 0xFF, 0x00, 0x00, 0xAA, 0xAA, 0xAA, 0xAA},
	}
	data := make([]byte, size)
	for i := 0; i < size; i += 8 {
		copy(data[i:], blocks[(i/64)%len(blocks)])
	}

	return data
}

// s2RepeatBlock is a valid S2 block that is not valid Snappy: after the literal "abcd"
// and a copy at offset 4, it ends with a copy1 element whose offset is zero, which S2
// reads as "repeat the previous offset".
var s2RepeatBlock = []byte{0x0C, 0x0C, 'a', 'b', 'c', 'd', 0x01, 0x04, 0x01, 0x00}

// encodeBlock encodes payload with codec into a buffer sized by MaxEncodedLen.
func encodeBlock(t testing.TB, codec BlockCodec, payload []byte) []byte {
	t.Helper()
	encoded, err := codec.EncodeTo(make([]byte, codec.MaxEncodedLen(len(payload))), payload)
	require.NoError(t, err)

	return encoded
}

func randomPayload(t testing.TB, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}

func TestGetSecondStage(t *testing.T) {
	t.Run("Known codes", func(t *testing.T) {
		none, err := GetSecondStage(format.CompressorNone)
		require.NoError(t, err)
		require.Equal(t, format.CompressorNone, none.Compressor())

		snappy, err := GetSecondStage(format.CompressorSnappy)
		require.NoError(t, err)
		require.Equal(t, format.CompressorSnappy, snappy.Compressor())
	})

	t.Run("Unknown codes", func(t *testing.T) {
		for _, c := range []format.Compressor{format.CompressorComplex, 0x0, 0xD} {
			codec, err := GetSecondStage(c)
			require.Nil(t, codec)
			require.ErrorIs(t, err, errs.ErrBadFrame)
		}
	})
}

func TestSnappyCodec_RoundTrip(t *testing.T) {
	levels := []Level{LevelDefault, LevelBetter, LevelBest}
	payloads := map[string][]byte{
		"tiny":         []byte("hap"),
		"dxt":          dxtLikePayload(64 * 1024),
		"random":       randomPayload(t, 4096),
		"single block": dxtLikePayload(8),
	}

	for _, level := range levels {
		codec := NewSnappyCodec(level)
		for name, payload := range payloads {
			t.Run(level.String()+"/"+name, func(t *testing.T) {
				dst := make([]byte, codec.MaxEncodedLen(len(payload)))
				encoded, err := codec.EncodeTo(dst, payload)
				require.NoError(t, err)
				require.LessOrEqual(t, len(encoded), len(dst))

				n, err := codec.DecodedLen(encoded)
				require.NoError(t, err)
				require.Equal(t, len(payload), n)

				out := make([]byte, n)
				written, err := codec.DecodeTo(out, encoded)
				require.NoError(t, err)
				require.Equal(t, n, written)
				require.Equal(t, payload, out)
			})
		}
	}
}

func TestSnappyCodec_EncodeToReusesDestination(t *testing.T) {
	codec := NewSnappyCodec(LevelDefault)
	payload := dxtLikePayload(4096)
	dst := make([]byte, codec.MaxEncodedLen(len(payload)))

	encoded, err := codec.EncodeTo(dst, payload)

	require.NoError(t, err)
	require.Same(t, &dst[0], &encoded[0])
}

func TestSnappyCodec_LevelsAreSnappyCompatible(t *testing.T) {
	payload := dxtLikePayload(32 * 1024)
	reader := NewSnappyCodec(LevelDefault)

	for _, level := range []Level{LevelBetter, LevelBest} {
		encoded := encodeBlock(t, NewSnappyCodec(level), payload)

		decoded := make([]byte, len(payload))
		n, err := reader.DecodeTo(decoded, encoded)
		require.NoError(t, err)
		require.Equal(t, len(payload), n)
		require.Equal(t, payload, decoded)
	}
}

func TestSnappyCodec_InvalidLevelFallsBack(t *testing.T) {
	require.Equal(t, LevelDefault, NewSnappyCodec(Level(42)).Level())
	require.False(t, Level(42).IsValid())
	require.Equal(t, "Unknown", Level(42).String())
}

func TestSnappyCodec_DecodeErrors(t *testing.T) {
	codec := NewSnappyCodec(LevelDefault)
	valid := encodeBlock(t, codec, dxtLikePayload(1024))

	t.Run("Empty block", func(t *testing.T) {
		_, err := codec.DecodedLen(nil)
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("Unterminated length varint", func(t *testing.T) {
		_, err := codec.DecodedLen([]byte{0xFF, 0xFF})
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("Truncated body", func(t *testing.T) {
		out := make([]byte, 1024)
		_, err := codec.DecodeTo(out, valid[:len(valid)/2])
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("Destination too small", func(t *testing.T) {
		out := make([]byte, 1023)
		_, err := codec.DecodeTo(out, valid)
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})

	t.Run("Decoder stays inside its span", func(t *testing.T) {
		out := bytes.Repeat([]byte{0xEE}, 2048)
		n, err := codec.DecodeTo(out, valid)
		require.NoError(t, err)
		require.Equal(t, 1024, n)
		require.Equal(t, bytes.Repeat([]byte{0xEE}, 1024), out[1024:])
	})
}

func TestSnappyCodec_RejectsS2Extensions(t *testing.T) {
	// The block is well formed for S2.
	decoded, err := s2.Decode(nil, s2RepeatBlock)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdabcdabcd"), decoded)

	codec := NewSnappyCodec(LevelDefault)
	n, err := codec.DecodedLen(s2RepeatBlock)
	require.NoError(t, err)
	require.Equal(t, 12, n)

	out := make([]byte, n)
	_, err = codec.DecodeTo(out, s2RepeatBlock)
	require.ErrorIs(t, err, errs.ErrBadFrame)
}

func TestNoOpCodec(t *testing.T) {
	codec := NewNoOpCodec()
	payload := []byte("raw dxt blocks")

	t.Run("SecondStage", func(t *testing.T) {
		require.Equal(t, len(payload), codec.MaxEncodedLen(len(payload)))

		encoded, err := codec.EncodeTo(nil, payload)
		require.NoError(t, err)
		require.Equal(t, payload, encoded)

		n, err := codec.DecodedLen(encoded)
		require.NoError(t, err)
		require.Equal(t, len(payload), n)

		out := make([]byte, n)
		written, err := codec.DecodeTo(out, encoded)
		require.NoError(t, err)
		require.Equal(t, n, written)
		require.Equal(t, payload, out)
	})

	t.Run("EncodeTo reuses capacity", func(t *testing.T) {
		dst := make([]byte, 0, 64)
		encoded, err := codec.EncodeTo(dst, payload)
		require.NoError(t, err)
		require.Same(t, &dst[:1][0], &encoded[0])
	})

	t.Run("DecodeTo short destination", func(t *testing.T) {
		_, err := codec.DecodeTo(make([]byte, 3), payload)
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})
}

func TestCandidateCodecs_RoundTrip(t *testing.T) {
	codecs := map[string]BlockCodec{
		"s2":   NewS2Codec(),
		"zstd": NewZstdCodec(),
		"lz4":  NewLZ4Codec(),
	}
	payloads := map[string][]byte{
		"dxt":    dxtLikePayload(16 * 1024),
		"random": randomPayload(t, 4096),
		"tiny":   []byte("hap"),
	}

	for name, codec := range codecs {
		for payloadName, payload := range payloads {
			t.Run(name+"/"+payloadName, func(t *testing.T) {
				dst := make([]byte, codec.MaxEncodedLen(len(payload)))
				encoded, err := codec.EncodeTo(dst, payload)
				require.NoError(t, err)
				require.NotEmpty(t, encoded)
				require.LessOrEqual(t, len(encoded), len(dst))

				out := bytes.Repeat([]byte{0xEE}, len(payload)+16)
				n, err := codec.DecodeTo(out[:len(payload)], encoded)
				require.NoError(t, err)
				require.Equal(t, len(payload), n)
				require.Equal(t, payload, out[:n])
				require.Equal(t, bytes.Repeat([]byte{0xEE}, 16), out[n:])
			})
		}

		t.Run(name+"/compresses dxt", func(t *testing.T) {
			payload := dxtLikePayload(16 * 1024)
			require.Less(t, len(encodeBlock(t, codec, payload)), len(payload))
		})
	}
}

func TestCandidateCodecs_DecodeErrors(t *testing.T) {
	payload := dxtLikePayload(4096)

	t.Run("s2 destination too small", func(t *testing.T) {
		codec := NewS2Codec()
		_, err := codec.DecodeTo(make([]byte, len(payload)-1), encodeBlock(t, codec, payload))
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})

	t.Run("s2 corrupt", func(t *testing.T) {
		_, err := NewS2Codec().DecodeTo(make([]byte, 64), []byte{0xFF, 0xFF})
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("zstd destination too small", func(t *testing.T) {
		codec := NewZstdCodec()
		_, err := codec.DecodeTo(make([]byte, len(payload)-1), encodeBlock(t, codec, payload))
		require.ErrorIs(t, err, errs.ErrBufferTooSmall)
	})

	t.Run("zstd corrupt", func(t *testing.T) {
		_, err := NewZstdCodec().DecodeTo(make([]byte, 64), []byte("definitely not zstd"))
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("lz4 destination too small", func(t *testing.T) {
		codec := NewLZ4Codec()
		_, err := codec.DecodeTo(make([]byte, len(payload)/2), encodeBlock(t, codec, payload))
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})
}
