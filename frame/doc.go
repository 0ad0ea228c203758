// Package frame encodes and decodes Hap frames.
//
// A frame is one section whose type byte packs a second-stage compressor (high nibble) and
// a texture format (low nibble). Its body is either the payload itself (None), one Snappy
// block (Snappy), or a Decode Instructions Container followed by independently compressed
// chunks (Complex):
//
//	+--------+------------------------------------------------------+
//	| header | body                                                 |
//	+--------+------------------------------------------------------+
//	         | 0x01 container: 0x02 compressors, 0x03 sizes,        |
//	         |                 [0x04 offsets]                       |
//	         | frame data: chunk 0 | chunk 1 | ... | chunk n-1      |
//	         +------------------------------------------------------+
//
// # Decoding
//
// Decode fills a caller-owned buffer. Chunks of complex frames are handed to an Executor,
// which decides where they run:
//
//	res, err := frame.Decode(data, frame.NewParallelExecutor(4), out)
//	if err != nil {
//	    return err
//	}
//	upload(out[:res.BytesUsed], res.Format.GPUFormat())
//
// Inspect reports the structure and decoded size of a frame without decompressing it.
//
// # Encoding
//
// Encode writes a single-block frame. Payloads that Snappy cannot shrink are stored
// verbatim. Complex frames are decode only.
//
//	out := make([]byte, frame.MaxEncodedLength(len(payload)))
//	n, err := frame.Encode(payload, format.TextureFormatRGBDXT1, format.CompressorSnappy, out)
//
// Decoder and Encoder bundle the same operations with options; see WithWorkers,
// WithExecutor, WithCompressor and WithCompressionLevel.
package frame
