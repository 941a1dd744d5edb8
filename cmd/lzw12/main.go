package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/svanichkin/lzw12"
)

const ext = ".lzw"

var (
	decompress = flag.Bool("d", false, "decompress even if the input does not end in "+ext)
	outPath    = flag.String("o", "", "output path (default: input with "+ext+" added or removed)")
	verbose    = flag.Bool("v", false, "print sizes, ratio and a zstd baseline")
	progress   = flag.Bool("p", false, "print a dot to stderr every 2 KiB")
	strict     = flag.Bool("strict", false, "fail on truncated or corrupt input")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Compress: lzw12 [-o out] [-v] [-p] <input>\nExpand:   lzw12 [-o out] [-strict] <input"+ext+">\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	expand := *decompress || strings.EqualFold(filepath.Ext(inputPath), ext)

	out := *outPath
	if out == "" {
		if expand {
			out = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
			if out == inputPath || out == "" {
				out = inputPath + ".out"
			}
		} else {
			out = inputPath + ext
		}
	}

	var opts []lzw12.Option
	if *progress {
		opts = append(opts, lzw12.WithProgress(func(int64) { fmt.Fprint(os.Stderr, ".") }))
	}

	if expand {
		opts = append(opts, lzw12.WithStrict(*strict))
		st, err := expandFile(inputPath, out, opts)
		if *progress {
			fmt.Fprintln(os.Stderr)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "decode error:", err)
			os.Exit(1)
		}
		fmt.Printf("Decoded %s → %s\n", inputPath, out)
		if *verbose {
			fmt.Printf("Input bytes:  %d\nOutput bytes: %d\nCodes:        %d\n", st.In, st.Out, st.Codes)
		}
		return
	}

	st, baseline, err := compressFile(inputPath, out, *verbose, opts)
	if *progress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(1)
	}
	fmt.Printf("Encoded %s → %s\n", inputPath, out)
	if *verbose {
		fmt.Printf("Input bytes:  %d\nOutput bytes: %d\nRatio:        %.1f%%\nZstd bytes:   %d\n",
			st.In, st.Out, 100*st.Ratio(), baseline)
		if st.Next > lzw12.MaxCode {
			fmt.Println("Dictionary:   full")
		}
	}
}

// countWriter counts bytes and discards them.
type countWriter struct{ n int64 }

func (c *countWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

// compressFile encodes inPath into outPath. With baseline set, the input is
// also fed through zstd and the zstd output size is returned for comparison.
func compressFile(inPath, outPath string, baseline bool, opts []lzw12.Option) (lzw12.Stats, int64, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return lzw12.Stats{}, 0, err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return lzw12.Stats{}, 0, err
	}
	defer out.Close()

	var src io.Reader = in
	var zw *zstd.Encoder
	var zsize countWriter
	if baseline {
		zw, err = zstd.NewWriter(&zsize)
		if err != nil {
			return lzw12.Stats{}, 0, errors.Wrap(err, "zstd baseline")
		}
		src = io.TeeReader(in, zw)
	}

	enc := lzw12.NewEncoder(opts...)
	if err := enc.Encode(out, src); err != nil {
		if zw != nil {
			zw.Close()
		}
		return lzw12.Stats{}, 0, err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return lzw12.Stats{}, 0, errors.Wrap(err, "zstd baseline")
		}
	}
	if err := out.Close(); err != nil {
		return lzw12.Stats{}, 0, err
	}
	return enc.Stats(), zsize.n, nil
}

func expandFile(inPath, outPath string, opts []lzw12.Option) (lzw12.Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return lzw12.Stats{}, err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return lzw12.Stats{}, err
	}
	defer out.Close()

	dec := lzw12.NewDecoder(opts...)
	if err := dec.Decode(out, in); err != nil {
		return lzw12.Stats{}, err
	}
	if err := out.Close(); err != nil {
		return lzw12.Stats{}, err
	}
	return dec.Stats(), nil
}
