// Package compress provides the second-stage codecs of the Hap frame format.
//
// Hap payloads are GPU block-compressed textures (DXT1/DXT5). Block compression already
// happens before a frame is built; the second stage applies a fast general purpose
// compressor on top so that frames read from disk are smaller, while decompression stays
// cheap enough to run per frame during playback.
//
// # Second Stages
//
// Two codecs are bound to wire compressor codes and implement SecondStage:
//
//	Code  Codec         Description
//	----  ------------  ---------------------------------------------
//	0xA   NoOpCodec     payload stored verbatim
//	0xB   SnappyCodec   Snappy block format
//
// SecondStage works on caller-owned buffers:
//
//	codec, _ := compress.GetSecondStage(format.CompressorSnappy)
//	n, err := codec.DecodedLen(block)
//	if err != nil {
//	    return err
//	}
//	written, err := codec.DecodeTo(out[:n], block)
//
// SnappyCodec supports three encoder levels, all backed by the S2 encoder in Snappy
// compatible mode. Every level produces blocks any Snappy decoder reads. Decoding is
// strict Snappy: blocks relying on S2 extensions are rejected as corrupt.
//
// # Candidate Codecs
//
// S2Codec, ZstdCodec and LZ4Codec implement BlockCodec but not SecondStage. They cannot
// be stored in a frame; Analyze uses them as reference points. Every candidate block is
// decoded back and compared with the payload before its size is reported:
//
//	estimates, _ := compress.Analyze(payload)
//	for _, e := range estimates {
//	    fmt.Printf("%-14s %6.2f%% verified=%t\n", e.Name, e.SpaceSavings(), e.Verified)
//	}
//
// # Errors
//
// BlockCodec methods wrap the errs sentinels: corrupt input is errs.ErrBadFrame,
// undersized destinations are errs.ErrBufferTooSmall, anything else from the underlying
// library is errs.ErrInternal.
//
// # Thread Safety
//
// All codecs are stateless values (the zstd and lz4 codecs draw coders from sync.Pool)
// and are safe for concurrent use.
package compress
