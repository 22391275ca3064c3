package telemetry

import (
	"bytes"
	"iter"
)

// Framer splits an incoming byte stream into newline-terminated records.
// Bytes that arrive without a trailing newline are carried over until the
// next Feed call. A Framer belongs to exactly one connection and is not
// safe for concurrent use.
type Framer struct {
	buf []byte
}

// Feed appends chunk to the carry-over buffer and returns an iterator over
// every complete record now available, in arrival order, with the newline
// stripped. Records may be empty. Anything after the last newline stays
// buffered; stopping the iteration early leaves the unread records buffered
// as well.
func (f *Framer) Feed(chunk []byte) iter.Seq[string] {
	f.buf = append(f.buf, chunk...)
	return func(yield func(string) bool) {
		for {
			i := bytes.IndexByte(f.buf, '\n')
			if i < 0 {
				return
			}
			record := string(f.buf[:i])
			f.buf = f.buf[i+1:]
			if !yield(record) {
				return
			}
		}
	}
}

// Pending returns the number of buffered bytes that have not yet formed a
// complete record. At end-of-stream these bytes are simply dropped: an
// unterminated trailing record is treated as incomplete, matching the wire
// contract.
func (f *Framer) Pending() int {
	return len(f.buf)
}
