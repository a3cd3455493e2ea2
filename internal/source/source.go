// Package source opens text inputs, transparently decompressing gzip and zstd streams.
package source

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies the compression of an input stream.
type Format string

// Supported formats.
const (
	Plain Format = "plain"
	Gzip  Format = "gzip"
	Zstd  Format = "zstd"
)

// Decompress sniffs the leading bytes of r and returns a reader over the
// decompressed content. Streams without a known magic number are returned
// as-is and reported as Plain.
func Decompress(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	// zstd magic is the longest at 4 bytes
	magic, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", err
	}

	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", err
		}
		return zr, Gzip, nil
	case len(magic) >= 4 && magic[0] == 0x28 && magic[1] == 0xb5 && magic[2] == 0x2f && magic[3] == 0xfd:
		decoder, err := zstd.NewReader(br)
		if err != nil {
			return nil, "", err
		}
		return decoder.IOReadCloser(), Zstd, nil
	default:
		return io.NopCloser(br), Plain, nil
	}
}

// File is an opened, possibly decompressed, input file.
type File struct {
	io.Reader
	Format Format
	// Size is the on-disk size of the file in bytes.
	Size int64

	decoder io.Closer
	file    *os.File
	closed  bool
}

// Open opens path for reading and decompresses it if needed.
// The caller must close the returned File.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: reading user-supplied input is the point
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	rc, format, err := Decompress(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &File{Reader: rc, Format: format, Size: info.Size(), decoder: rc, file: f}, nil
}

// Close releases the decoder and the underlying file.
// Calls after the first are no-ops.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return errors.Join(f.decoder.Close(), f.file.Close())
}
