package compress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hap/errs"
)

// flipCodec wraps a BlockCodec and corrupts the first decoded byte.
type flipCodec struct {
	BlockCodec
}

func (c flipCodec) DecodeTo(dst, src []byte) (int, error) {
	n, err := c.BlockCodec.DecodeTo(dst, src)
	if err == nil && n > 0 {
		dst[0] ^= 0xFF
	}

	return n, err
}

func TestAnalyze(t *testing.T) {
	t.Run("Compressible payload", func(t *testing.T) {
		payload := dxtLikePayload(64 * 1024)

		estimates, err := Analyze(payload)

		require.NoError(t, err)
		require.Len(t, estimates, len(candidates))

		names := make([]string, 0, len(estimates))
		for _, e := range estimates {
			names = append(names, e.Name)
			require.Equal(t, int64(len(payload)), e.OriginalSize)
			require.Positive(t, e.CompressedSize)
			require.Less(t, e.CompressionRatio(), 1.0, e.Name)
			require.Positive(t, e.SpaceSavings(), e.Name)
			require.True(t, e.Verified, e.Name)
		}
		require.Equal(t, []string{"snappy", "snappy-better", "snappy-best", "s2", "zstd", "lz4"}, names)
	})

	t.Run("Frameable flags", func(t *testing.T) {
		estimates, err := Analyze([]byte("abc"))
		require.NoError(t, err)

		for _, e := range estimates {
			wantFrameable := e.Name == "snappy" || e.Name == "snappy-better" || e.Name == "snappy-best"
			require.Equal(t, wantFrameable, e.Frameable, e.Name)
		}
	})

	t.Run("Incompressible payload never reports zero", func(t *testing.T) {
		payload := randomPayload(t, 8192)

		estimates, err := Analyze(payload)

		require.NoError(t, err)
		for _, e := range estimates {
			require.GreaterOrEqual(t, e.CompressedSize, int64(len(payload))*9/10, e.Name)
		}
	})
}

func TestAnalyze_EmptyPayload(t *testing.T) {
	estimates, err := Analyze(nil)

	require.NoError(t, err)
	require.Len(t, estimates, len(candidates))
	for _, e := range estimates {
		require.Zero(t, e.OriginalSize, e.Name)
		require.False(t, e.Verified, e.Name)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	payload := dxtLikePayload(1024)
	codec := NewSnappyCodec(LevelDefault)
	encoded := encodeBlock(t, codec, payload)
	decoded := make([]byte, len(payload))

	t.Run("Matching round trip", func(t *testing.T) {
		require.NoError(t, verifyRoundTrip(codec, decoded, encoded, payload))
	})

	t.Run("Mismatch", func(t *testing.T) {
		err := verifyRoundTrip(flipCodec{codec}, decoded, encoded, payload)
		require.ErrorIs(t, err, errs.ErrInternal)
	})

	t.Run("Decode failure", func(t *testing.T) {
		err := verifyRoundTrip(codec, decoded, encoded[:len(encoded)/2], payload)
		require.ErrorIs(t, err, errs.ErrBadFrame)
	})

	t.Run("Stale buffer does not mask a short decode", func(t *testing.T) {
		copy(decoded, payload)
		short := encodeBlock(t, codec, payload[:512])
		err := verifyRoundTrip(codec, decoded, short, payload)
		require.ErrorIs(t, err, errs.ErrInternal)
	})
}

func TestEstimate_Ratios(t *testing.T) {
	e := Estimate{OriginalSize: 200, CompressedSize: 50}
	require.InDelta(t, 0.25, e.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, e.SpaceSavings(), 1e-9)

	zero := Estimate{}
	require.Zero(t, zero.CompressionRatio())
	require.InDelta(t, 100.0, zero.SpaceSavings(), 1e-9)
}
