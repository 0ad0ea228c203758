// Package format defines the typed identifiers of the Hap wire format.
//
// A frame's type byte packs two 4-bit fields:
//
//	bits 4-7: Compressor (None 0xA, Snappy 0xB, Complex 0xC)
//	bits 0-3: FormatID   (RGB_DXT1 0xB, RGBA_DXT5 0xE, YCoCg_DXT5 0xF)
//
// Packed byte values:
//
//	Format         Compressor      Byte
//	-----------------------------------
//	RGB_DXT1       None            0xAB
//	RGB_DXT1       Snappy          0xBB
//	RGB_DXT1       Complex         0xCB
//	RGBA_DXT5      None            0xAE
//	RGBA_DXT5      Snappy          0xBE
//	RGBA_DXT5      Complex         0xCE
//	YCoCg_DXT5     None            0xAF
//	YCoCg_DXT5     Snappy          0xBF
//	YCoCg_DXT5     Complex         0xCF
//
// Wire identifiers are translated to API-level TextureFormat constants at the boundary
// with TextureFormatForID and IDForTextureFormat; all other code works on the typed values.
package format
