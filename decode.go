package lzw12

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Decoder expands streams produced by Encoder.
// Like Encoder it reuses its table between calls, clearing it first, and is
// not safe for concurrent use.
type Decoder struct {
	cfg   config
	table decodeTable
	stack []byte
	stats Stats
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{
		cfg:   newConfig(opts),
		stack: make([]byte, 0, MaxCode+1),
	}
}

// Stats returns the statistics of the last Decode call.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Decode reads 12-bit codes from src and writes the expanded bytes to dst
// until END_OF_STREAM. Unless the Decoder is strict, running out of input
// ends the stream as if END_OF_STREAM had been read.
func (d *Decoder) Decode(dst io.Writer, src io.Reader) error {
	d.table.reset()
	d.stats = Stats{Next: FirstCode}

	in := NewBitReader(src)
	out := bufio.NewWriter(dst)
	m := meter{fn: d.cfg.progress}
	defer func() { d.stats.In = in.BytesRead() }()

	oldCode, err := d.readCode(in)
	if err != nil {
		return d.finish(out, &m, d.endOfInput(err))
	}
	if oldCode == EndOfStream {
		return d.finish(out, &m, nil)
	}
	if oldCode > 0xff && d.cfg.strict {
		return errors.Wrapf(ErrCorrupt, "first code %d is not a literal", oldCode)
	}
	firstChar := byte(oldCode)
	if err := out.WriteByte(firstChar); err != nil {
		return errors.Wrap(err, "lzw12: write output")
	}
	m.add(1)

	nextCode := FirstCode
	for {
		newCode, err := d.readCode(in)
		if err != nil {
			return d.finish(out, &m, d.endOfInput(err))
		}
		if newCode == EndOfStream {
			break
		}

		// The stack is filled back to front and reversed before writing.
		stack := d.stack[:0]
		var ok bool
		if newCode >= nextCode {
			// The encoder assigned newCode while emitting the previous
			// code, so it spells oldCode followed by oldCode's first byte.
			if newCode > nextCode && d.cfg.strict {
				return errors.Wrapf(ErrCorrupt, "code %d ahead of next code %d", newCode, nextCode)
			}
			stack = append(stack, firstChar)
			stack, ok = d.table.expand(stack, oldCode)
		} else {
			stack, ok = d.table.expand(stack, newCode)
		}
		if !ok {
			return errors.Wrapf(ErrCorrupt, "code %d", newCode)
		}
		d.stack = stack
		reverse(stack)

		firstChar = stack[0]
		if _, err := out.Write(stack); err != nil {
			return errors.Wrap(err, "lzw12: write output")
		}
		m.add(len(stack))

		if nextCode <= MaxCode {
			d.table.set(nextCode, oldCode, firstChar)
			nextCode++
		}
		d.stats.Next = nextCode
		oldCode = newCode
	}
	return d.finish(out, &m, nil)
}

func (d *Decoder) readCode(in *BitReader) (int, error) {
	v, err := in.ReadBits(CodeBits)
	if err != nil {
		return 0, err
	}
	code := int(v)
	if d.cfg.trace != nil {
		d.cfg.trace(code)
	}
	d.stats.Codes++
	return code, nil
}

// endOfInput maps a failed code read to the error Decode returns.
func (d *Decoder) endOfInput(err error) error {
	if err != io.EOF && err != io.ErrUnexpectedEOF {
		return errors.Wrap(err, "lzw12: read code")
	}
	if d.cfg.strict {
		return errors.Wrap(ErrTruncated, err.Error())
	}
	return nil
}

// finish flushes what has been decoded so far, even when err is set, and
// records the output size.
func (d *Decoder) finish(out *bufio.Writer, m *meter, err error) error {
	ferr := out.Flush()
	d.stats.Out = m.n
	if err != nil {
		return err
	}
	if ferr != nil {
		return errors.Wrap(ferr, "lzw12: write output")
	}
	m.done()
	return nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Decode expands src into dst using a fresh table.
func Decode(dst io.Writer, src io.Reader, opts ...Option) error {
	return NewDecoder(opts...).Decode(dst, src)
}

// DecodeAll expands src and returns a newly allocated byte slice.
func DecodeAll(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewDecoder().Decode(&buf, bytes.NewReader(src)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
