// Package lzw12 implements LZW compression with fixed 12-bit codes.
//
// # Format
//
// The compressed stream is a sequence of 12-bit codes packed most
// significant bit first, with no header, length or checksum:
//
//	0..255     literal bytes
//	256        END_OF_STREAM, written once at the end
//	257..4095  strings learned while coding, in assignment order
//
// The last byte is padded with zero bits. An empty input therefore encodes
// to the two bytes 0x10 0x00.
//
// When code 4095 has been assigned the dictionary is frozen: matching goes
// on against the existing entries and nothing new is learned. Streams from
// LZW variants that reset their dictionary instead are not compatible.
//
// # Dictionaries
//
// The encoder looks strings up by (prefix code, next byte) in a 5021-slot
// open addressing table. The decoder indexes its table by code and rebuilds
// each string by walking parent links. Both grow in the same order, so the
// decoder always knows every code except possibly the one the encoder
// assigned while writing the previous code; that code is the previous
// string followed by its own first byte.
//
// # Basic Usage
//
//	comp := lzw12.EncodeAll([]byte("TOBEORNOTTOBEORTOBEORNOT"))
//	orig, err := lzw12.DecodeAll(comp)
//
//	// Streams, with a reusable encoder
//	enc := lzw12.NewEncoder(lzw12.WithProgress(func(n int64) { fmt.Print(".") }))
//	err = enc.Encode(dst, src)
//
// Truncated input decodes to the data preceding the cut. Use WithStrict to
// get ErrTruncated instead.
package lzw12
