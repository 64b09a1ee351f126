// Package formats reads and writes the Ragnarok Online ground formats that
// generated tiles are exported to: GAT (altitude and walkability) and GND
// (textured ground mesh).
package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// reader decodes little-endian fields and keeps the first failure, wrapped
// in the format's truncation error.
type reader struct {
	r         *bytes.Reader
	truncated error
	err       error
}

func newReader(data []byte, truncated error) *reader {
	return &reader{r: bytes.NewReader(data), truncated: truncated}
}

func (r *reader) read(v any, field string) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r.r, binary.LittleEndian, v); err != nil {
		r.err = fmt.Errorf("%w: reading %s", r.truncated, field)
	}
}

func (r *reader) bytes(n int, field string) []byte {
	if r.err != nil {
		return nil
	}
	if n > r.r.Len() {
		r.err = fmt.Errorf("%w: reading %s", r.truncated, field)
		return nil
	}
	b := make([]byte, n)
	r.r.Read(b)
	return b
}

func (r *reader) skip(n int64, field string) {
	if r.err != nil {
		return
	}
	if n > int64(r.r.Len()) {
		r.err = fmt.Errorf("%w: skipping %s", r.truncated, field)
		return
	}
	r.r.Seek(n, io.SeekCurrent)
}

// writer encodes little-endian fields into a buffer.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) write(v any) {
	// Writes to a bytes.Buffer only fail for unsupported types.
	if err := binary.Write(&w.buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

func (w *writer) raw(b []byte) {
	w.buf.Write(b)
}
