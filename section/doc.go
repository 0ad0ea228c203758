// Package section implements the self-delimiting section layout of the Hap frame format.
//
// Every piece of a Hap frame, including the frame itself, is a section: a short header
// carrying a length and a type byte, followed by the section body.
//
// # Header Format
//
// Sections whose body fits in 24 bits use a 4-byte header:
//
//	Bytes | Field  | Description
//	------|--------|--------------------------------------
//	0-2   | Length | body length, 24-bit little-endian
//	3     | Type   | section type
//
// Longer sections use an 8-byte header whose 24-bit length field is zero:
//
//	Bytes | Field  | Description
//	------|--------|--------------------------------------
//	0-2   | Zero   | 0x000000 marks the 8-byte variant
//	3     | Type   | section type
//	4-7   | Length | body length, 32-bit little-endian
//
// # Complex Frames
//
// The body of a frame whose compressor is Complex starts with a Decode Instructions
// Container, immediately followed by the concatenated chunk data:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Frame header (type 0xCx)                             │
//	├──────────────────────────────────────────────────────┤
//	│ Decode Instructions Container (type 0x01)            │
//	│  ├─ Chunk Second-Stage Compressor Table (type 0x02)  │
//	│  ├─ Chunk Size Table (type 0x03)                     │
//	│  └─ Chunk Offset Table (type 0x04, optional)         │
//	├──────────────────────────────────────────────────────┤
//	│ Chunk data                                           │
//	└──────────────────────────────────────────────────────┘
//
// Unknown child section types inside the container are skipped so that newer writers can
// add tables without breaking older readers.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Parsed values alias the input buffer
// and stay valid only as long as the caller keeps that buffer unchanged.
package section
