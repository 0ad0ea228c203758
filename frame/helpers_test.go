package frame

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/klauspost/compress/snappy"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/hap/endian"
	"github.com/arloliu/hap/format"
	"github.com/arloliu/hap/section"
)

// dxtPayload builds data resembling DXT1 blocks: a few distinct 8-byte blocks in runs.
func dxtPayload(size int) []byte {
	blocks := [][]byte{
		{0x00, 0xF8, 0x00, 0xF8, 0x00, 0x00, 0x00, 0x00},
		{0xE0, 0x07, 0x1F, 0x00, 0x55, 0x55, 0x55, 0x55},
		{0xFF, 0xFF, 0x00, 0x00, 0xAA, 0xAA, 0xAA, 0xAA},
		{0x1F, 0x00, 0xE0, 0x07, 0x0F, 0xF0, 0x0F, 0xF0},
	}
	data := make([]byte, size)
	for i := 0; i < size; i += 8 {
		copy(data[i:], blocks[(i/128)%len(blocks)])
	}

	return data
}

func randomPayload(t testing.TB, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)

	return data
}

// complexFrame describes a complex frame to build in tests.
type complexFrame struct {
	format      format.FormatID
	chunks      [][]byte // decoded chunk payloads
	compressors []format.Compressor
	explicit    bool // write an offset table, storing chunks in reverse order
}

// build encodes the frame and returns it together with the expected decoded payload.
func (f complexFrame) build(t testing.TB) ([]byte, []byte) {
	t.Helper()

	stored := make([][]byte, len(f.chunks))
	for i, c := range f.chunks {
		switch f.compressors[i] {
		case format.CompressorSnappy:
			stored[i] = snappy.Encode(nil, c)
		default:
			stored[i] = c
		}
	}

	engine := endian.GetLittleEndianEngine()
	compressors := make([]byte, 0, len(f.chunks))
	sizes := make([]byte, 0, 4*len(f.chunks))
	for i := range f.chunks {
		compressors = append(compressors, uint8(f.compressors[i]))
		sizes = engine.AppendUint32(sizes, uint32(len(stored[i])))
	}

	var data []byte
	offsets := make([]uint32, len(f.chunks))
	if f.explicit {
		for i := len(stored) - 1; i >= 0; i-- {
			offsets[i] = uint32(len(data))
			data = append(data, stored[i]...)
		}
	} else {
		for i := range stored {
			data = append(data, stored[i]...)
		}
	}

	var container []byte
	container = section.AppendSection(container, uint8(section.TypeCompressorTable), compressors)
	container = section.AppendSection(container, uint8(section.TypeSizeTable), sizes)
	if f.explicit {
		table := make([]byte, 0, 4*len(offsets))
		for _, off := range offsets {
			table = engine.AppendUint32(table, off)
		}
		container = section.AppendSection(container, uint8(section.TypeOffsetTable), table)
	}

	body := section.AppendSection(nil, uint8(section.TypeDecodeInstructions), container)
	body = append(body, data...)

	frame := section.AppendSection(nil, format.PackType(format.CompressorComplex, f.format), body)

	return frame, bytes.Join(f.chunks, nil)
}

// rawFrame wraps body in a top-level section with the given type nibbles.
func rawFrame(c format.Compressor, id format.FormatID, body []byte) []byte {
	return section.AppendSection(nil, format.PackType(c, id), body)
}

// reverseExecutor runs work items from the last index to the first.
func reverseExecutor(work func(int), count int) {
	for i := count - 1; i >= 0; i-- {
		work(i)
	}
}
