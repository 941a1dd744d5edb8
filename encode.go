package lzw12

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Encoder compresses byte streams into 12-bit LZW codes.
// It keeps its dictionary between calls to avoid reallocating it, but clears
// it at the start of every Encode. It is not safe for concurrent use.
type Encoder struct {
	cfg   config
	dict  encodeDict
	stats Stats
}

// NewEncoder returns an Encoder configured by opts.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// Stats returns the statistics of the last Encode call.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// Encode reads src until io.EOF and writes the compressed stream to dst,
// terminated by END_OF_STREAM and zero-padded to a byte boundary.
//
// Matching is greedy: the current code is extended while (code, next byte)
// is in the dictionary. On a miss the current code is emitted and, while
// codes remain, the miss is learned as the next code. Once MaxCode has been
// assigned the dictionary is frozen for the rest of the stream.
func (e *Encoder) Encode(dst io.Writer, src io.Reader) error {
	e.dict.reset()
	e.stats = Stats{}

	in, ok := src.(io.ByteReader)
	if !ok {
		in = bufio.NewReader(src)
	}
	out := NewBitWriter(dst)
	m := meter{fn: e.cfg.progress}
	nextCode := FirstCode

	b, err := in.ReadByte()
	switch {
	case err == io.EOF:
		// empty input: the stream is a lone terminator
	case err != nil:
		return errors.Wrap(err, "lzw12: read input")
	default:
		m.add(1)
		current := int(b)
		for {
			c, err := in.ReadByte()
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.Wrap(err, "lzw12: read input")
			}
			m.add(1)

			index, found := e.dict.find(current, c)
			if found {
				current = e.dict.code(index)
				continue
			}
			if err := e.emit(out, current); err != nil {
				return err
			}
			if nextCode <= MaxCode {
				e.dict.reserve(index, nextCode, current, c)
				nextCode++
			}
			current = int(c)
		}
		if err := e.emit(out, current); err != nil {
			return err
		}
	}

	if err := e.emit(out, EndOfStream); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	m.done()

	e.stats.In = m.n
	e.stats.Out = (out.Len() + 7) / 8
	e.stats.Next = nextCode
	return nil
}

func (e *Encoder) emit(out *BitWriter, code int) error {
	if e.cfg.trace != nil {
		e.cfg.trace(code)
	}
	e.stats.Codes++
	return out.WriteBits(uint32(code), CodeBits)
}

// Encode compresses src into dst using a fresh dictionary.
func Encode(dst io.Writer, src io.Reader, opts ...Option) error {
	return NewEncoder(opts...).Encode(dst, src)
}

// EncodeAll compresses src and returns a newly allocated byte slice.
func EncodeAll(src []byte) []byte {
	// Worst case is one code per input byte plus the terminator.
	var buf bytes.Buffer
	buf.Grow((CodeBits*(len(src)+1) + 7) / 8)
	// Neither bytes.Reader nor bytes.Buffer can fail.
	_ = NewEncoder().Encode(&buf, bytes.NewReader(src))
	return buf.Bytes()
}
