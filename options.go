package lzw12

import "github.com/pkg/errors"

// ProgressInterval is the byte distance between two progress callbacks.
const ProgressInterval = 2048

var (
	// ErrTruncated is returned in strict mode when the stream ends without
	// an END_OF_STREAM code, including inside a code.
	ErrTruncated = errors.New("lzw12: truncated stream")

	// ErrCorrupt is returned when a code cannot have been produced by the
	// encoder.
	ErrCorrupt = errors.New("lzw12: corrupt stream")
)

// Option configures an Encoder or a Decoder.
type Option func(*config)

type config struct {
	progress func(n int64)
	trace    func(code int)
	strict   bool
}

// WithProgress registers fn to be called every ProgressInterval bytes of
// uncompressed data, and once more when the operation completes. n is the
// running total.
func WithProgress(fn func(n int64)) Option {
	return func(c *config) { c.progress = fn }
}

// WithTrace registers fn to observe every code written by the encoder or
// read by the decoder, END_OF_STREAM included.
func WithTrace(fn func(code int)) Option {
	return func(c *config) { c.trace = fn }
}

// WithStrict makes the decoder report ErrTruncated when the input ends
// before END_OF_STREAM and ErrCorrupt on codes that were never assigned.
// By default a short stream decodes to whatever precedes the cut.
func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Stats describes the last Encode or Decode call.
type Stats struct {
	In    int64 // bytes consumed from the source
	Out   int64 // bytes written to the sink
	Codes int   // codes written or read, END_OF_STREAM included
	Next  int   // next code that would have been assigned; MaxCode+1 once frozen
}

// Ratio returns Out/In, or 0 for an empty input.
func (s Stats) Ratio() float64 {
	if s.In == 0 {
		return 0
	}
	return float64(s.Out) / float64(s.In)
}

// meter counts uncompressed bytes and fires the progress callback.
type meter struct {
	fn   func(n int64)
	n    int64
	mark int64
}

func (m *meter) add(k int) {
	m.n += int64(k)
	if m.fn != nil && m.n-m.mark >= ProgressInterval {
		m.mark = m.n - m.n%ProgressInterval
		m.fn(m.n)
	}
}

func (m *meter) done() {
	if m.fn != nil {
		m.fn(m.n)
	}
}
