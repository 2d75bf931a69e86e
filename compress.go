package payload

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// NewCompressedSink wraps w in an s2 compressor and returns a binary sink
// writing through it. The returned closer must be closed after the last
// value to flush the compressed stream; until then the output is
// incomplete.
func NewCompressedSink(w io.Writer) (*BinarySink, io.Closer) {
	zw := s2.NewWriter(w)
	return NewBinarySink(zw), zw
}

// NewCompressedSource reads a stream produced by NewCompressedSink.
func NewCompressedSource(r io.Reader) *BinarySource {
	return NewBinarySource(s2.NewReader(r))
}
