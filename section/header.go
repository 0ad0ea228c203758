package section

import (
	"fmt"

	"github.com/arloliu/hap/endian"
	"github.com/arloliu/hap/errs"
)

// Header is a decoded section header.
type Header struct {
	// HeaderLength is 4 or 8.
	HeaderLength int
	// BodyLength is the number of body bytes following the header.
	BodyLength uint32
	// Type is the raw section type byte.
	Type uint8
}

// ReadHeader parses the section header at the start of buf.
//
// The header is validated against buf: the whole section, header and body, must fit.
//
// Parameters:
//   - buf: Bytes starting at a section header
//
// Returns:
//   - Header: Parsed header
//   - error: ErrBadFrame if buf is truncated or the section extends past the end of buf
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < ShortHeaderSize {
		return Header{}, fmt.Errorf("%w: section header needs %d bytes, have %d", errs.ErrBadFrame, ShortHeaderSize, len(buf))
	}

	h := Header{
		HeaderLength: ShortHeaderSize,
		BodyLength:   endian.Uint24(buf),
		Type:         buf[3],
	}

	if h.BodyLength == 0 {
		if len(buf) < LongHeaderSize {
			return Header{}, fmt.Errorf("%w: long section header needs %d bytes, have %d", errs.ErrBadFrame, LongHeaderSize, len(buf))
		}
		h.HeaderLength = LongHeaderSize
		h.BodyLength = endian.GetLittleEndianEngine().Uint32(buf[4:8])
	}

	if uint64(h.HeaderLength)+uint64(h.BodyLength) > uint64(len(buf)) {
		return Header{}, fmt.Errorf("%w: section of %d bytes exceeds buffer of %d bytes", errs.ErrBadFrame, uint64(h.HeaderLength)+uint64(h.BodyLength), len(buf))
	}

	return h, nil
}

// Size returns the total section size, header included.
func (h Header) Size() int {
	return h.HeaderLength + int(h.BodyLength)
}

// Body returns the section body within buf, which must be the buffer h was read from.
func (h Header) Body(buf []byte) []byte {
	return buf[h.HeaderLength:h.Size():h.Size()]
}

// HeaderLengthFor returns the header length needed for a body of n bytes.
//
// An empty body needs the 8-byte variant: a zero 24-bit length marks the long form.
func HeaderLengthFor(n uint64) int {
	if n == 0 || n > MaxShortLength {
		return LongHeaderSize
	}

	return ShortHeaderSize
}

// PutHeader writes a section header into the start of dst.
//
// A headerLength of 4 stores bodyLength in the 24-bit field, discarding higher bits; any
// other value writes the 8-byte variant. dst must have room for the header.
func PutHeader(dst []byte, headerLength int, bodyLength uint32, typ uint8) {
	if headerLength == ShortHeaderSize {
		endian.PutUint24(dst, bodyLength)
	} else {
		endian.PutUint24(dst, 0)
		endian.GetLittleEndianEngine().PutUint32(dst[4:8], bodyLength)
	}
	dst[3] = typ
}

// AppendHeader appends a section header to dst, following the same rules as PutHeader.
func AppendHeader(dst []byte, headerLength int, bodyLength uint32, typ uint8) []byte {
	if headerLength == ShortHeaderSize {
		dst = endian.AppendUint24(dst, bodyLength)
		return append(dst, typ)
	}

	dst = endian.AppendUint24(dst, 0)
	dst = append(dst, typ)

	return endian.GetLittleEndianEngine().AppendUint32(dst, bodyLength)
}

// AppendSection appends a complete section, choosing the shortest header that fits body.
func AppendSection(dst []byte, typ uint8, body []byte) []byte {
	dst = AppendHeader(dst, HeaderLengthFor(uint64(len(body))), uint32(len(body)), typ) //nolint: gosec
	return append(dst, body...)
}
