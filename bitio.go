package lzw12

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// ErrBitCount is returned when a field width is outside 1..32.
var ErrBitCount = errors.New("lzw12: invalid bit count")

// BitWriter packs bits msb-first into an io.Writer.
// At most one partial byte is held in the accumulator.
type BitWriter struct {
	w    io.ByteWriter
	buf  *bufio.Writer // non-nil when NewBitWriter had to add buffering
	byte byte
	n    uint8 // number of bits written into byte (0..7)
	bits int64
}

// NewBitWriter returns a BitWriter writing to w. If w is not an
// io.ByteWriter it is wrapped in a bufio.Writer which Close flushes.
func NewBitWriter(w io.Writer) *BitWriter {
	if bw, ok := w.(io.ByteWriter); ok {
		return &BitWriter{w: bw}
	}
	buf := bufio.NewWriter(w)
	return &BitWriter{w: buf, buf: buf}
}

// WriteBit writes a single bit (msb-first in byte). Any non-zero bit is a 1.
func (bw *BitWriter) WriteBit(bit uint) error {
	bw.byte <<= 1
	if bit != 0 {
		bw.byte |= 1
	}
	bw.n++
	bw.bits++
	if bw.n == 8 {
		if err := bw.w.WriteByte(bw.byte); err != nil {
			return errors.Wrap(err, "lzw12: write byte")
		}
		bw.byte = 0
		bw.n = 0
	}
	return nil
}

// WriteBits writes the n least significant bits of value, msb-first.
// For example, if n=4 and value=0b1011, this writes: 1,0,1,1.
func (bw *BitWriter) WriteBits(value uint32, n uint8) error {
	if n == 0 || n > 32 {
		return errors.Wrapf(ErrBitCount, "write %d bits", n)
	}
	for mask := uint32(1) << (n - 1); mask != 0; mask >>= 1 {
		if err := bw.WriteBit(uint(value & mask)); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of bits written so far, padding excluded.
func (bw *BitWriter) Len() int64 {
	return bw.bits
}

// Close writes any remaining bits, padded with zeros in the low end of the
// last byte, and flushes internal buffering. The underlying writer is not
// closed.
func (bw *BitWriter) Close() error {
	if bw.n > 0 {
		bw.byte <<= 8 - bw.n
		if err := bw.w.WriteByte(bw.byte); err != nil {
			return errors.Wrap(err, "lzw12: write byte")
		}
		bw.byte = 0
		bw.n = 0
	}
	if bw.buf != nil {
		if err := bw.buf.Flush(); err != nil {
			return errors.Wrap(err, "lzw12: flush")
		}
	}
	return nil
}

// BitReader reads bits msb-first from an io.Reader.
type BitReader struct {
	r     io.ByteReader
	byte  byte
	bit   uint8 // bits already consumed from byte (0..8), 8 means empty
	bytes int64
}

// NewBitReader returns a BitReader reading from r. If r is not an
// io.ByteReader it is wrapped in a bufio.Reader.
func NewBitReader(r io.Reader) *BitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &BitReader{r: br, bit: 8}
}

// ReadBit returns the next bit. It returns io.EOF once the source is
// exhausted.
func (br *BitReader) ReadBit() (uint, error) {
	if br.bit == 8 {
		b, err := br.r.ReadByte()
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, errors.Wrap(err, "lzw12: read byte")
		}
		br.byte = b
		br.bit = 0
		br.bytes++
	}
	bit := uint(br.byte>>(7-br.bit)) & 1
	br.bit++
	return bit, nil
}

// ReadBits reads an n-bit field, msb-first: the first bit read becomes the
// most significant bit of the result. It returns io.EOF if the source ends
// before the field starts and io.ErrUnexpectedEOF if it ends inside it.
func (br *BitReader) ReadBits(n uint8) (uint32, error) {
	if n == 0 || n > 32 {
		return 0, errors.Wrapf(ErrBitCount, "read %d bits", n)
	}
	var v uint32
	for i := uint8(0); i < n; i++ {
		bit, err := br.ReadBit()
		if err == io.EOF && i > 0 {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint32(bit)
	}
	return v, nil
}

// BytesRead reports how many bytes have been pulled from the source.
func (br *BitReader) BytesRead() int64 {
	return br.bytes
}
