package payload

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// maxFrame caps string/bytes lengths read from untrusted streams so a
// corrupt length prefix cannot drive a giant allocation.
const maxFrame = 1 << 28

// BinarySink writes values to w in a compact varint-framed binary form:
// bools as one byte, integers as varints, floats as 8 little-endian bytes,
// strings and byte slices as a uvarint length followed by the raw bytes.
//
// The format carries no type tags; a BinarySource must read values back in
// the exact order and with the exact types they were written.
type BinarySink struct {
	w       io.Writer
	scratch [binary.MaxVarintLen64]byte
}

// NewBinarySink creates a sink writing to w.
func NewBinarySink(w io.Writer) *BinarySink {
	return &BinarySink{w: w}
}

func (s *BinarySink) WriteBool(v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := s.w.Write([]byte{b})
	return err
}

func (s *BinarySink) WriteInt(v int64) error {
	n := binary.PutVarint(s.scratch[:], v)
	_, err := s.w.Write(s.scratch[:n])
	return err
}

func (s *BinarySink) WriteUint(v uint64) error {
	n := binary.PutUvarint(s.scratch[:], v)
	_, err := s.w.Write(s.scratch[:n])
	return err
}

func (s *BinarySink) WriteFloat(v float64) error {
	binary.LittleEndian.PutUint64(s.scratch[:8], math.Float64bits(v))
	_, err := s.w.Write(s.scratch[:8])
	return err
}

func (s *BinarySink) WriteString(v string) error {
	if err := s.WriteUint(uint64(len(v))); err != nil {
		return err
	}
	_, err := io.WriteString(s.w, v)
	return err
}

func (s *BinarySink) WriteBytes(v []byte) error {
	if err := s.WriteUint(uint64(len(v))); err != nil {
		return err
	}
	_, err := s.w.Write(v)
	return err
}

// byteReader is what the varint decoders need on top of io.Reader.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// BinarySource reads the BinarySink framing from r.
type BinarySource struct {
	r byteReader
}

// NewBinarySource creates a source reading from r. Readers without a
// ReadByte method are wrapped in a bufio.Reader.
func NewBinarySource(r io.Reader) *BinarySource {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &BinarySource{r: br}
}

func (s *BinarySource) ReadBool() (bool, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("payload: invalid bool byte 0x%02x", b)
	}
}

func (s *BinarySource) ReadInt() (int64, error) {
	return binary.ReadVarint(s.r)
}

func (s *BinarySource) ReadUint() (uint64, error) {
	return binary.ReadUvarint(s.r)
}

func (s *BinarySource) ReadFloat() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

func (s *BinarySource) ReadString() (string, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *BinarySource) ReadBytes() ([]byte, error) {
	n, err := s.ReadUint()
	if err != nil {
		return nil, err
	}
	if n > maxFrame {
		return nil, fmt.Errorf("payload: frame length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
