// Package meter counts the bytes flowing through a reader.
package meter

import "io"

// Callback is called after each read with the cumulative byte count.
type Callback func(bytesRead int64)

// Reader wraps an io.Reader and counts the bytes read from it.
type Reader struct {
	reader   io.Reader
	callback Callback
	read     int64
}

// NewReader creates a counting reader. The callback may be nil.
func NewReader(r io.Reader, callback Callback) *Reader {
	return &Reader{
		reader:   r,
		callback: callback,
	}
}

// Read implements io.Reader and reports the running total after each read.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		if r.callback != nil {
			r.callback(r.read)
		}
	}
	return n, err
}

// BytesRead returns the number of bytes read so far.
func (r *Reader) BytesRead() int64 {
	return r.read
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
