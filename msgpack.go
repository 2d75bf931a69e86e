package payload

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackSink writes values as a MessagePack stream. Unlike BinarySink the
// stream is self-describing enough for other MessagePack tooling to read,
// at a small size cost.
type MsgpackSink struct {
	enc *msgpack.Encoder
}

// NewMsgpackSink creates a sink encoding to w.
func NewMsgpackSink(w io.Writer) *MsgpackSink {
	return &MsgpackSink{enc: msgpack.NewEncoder(w)}
}

func (s *MsgpackSink) WriteBool(v bool) error     { return s.enc.EncodeBool(v) }
func (s *MsgpackSink) WriteInt(v int64) error     { return s.enc.EncodeInt(v) }
func (s *MsgpackSink) WriteUint(v uint64) error   { return s.enc.EncodeUint(v) }
func (s *MsgpackSink) WriteFloat(v float64) error { return s.enc.EncodeFloat64(v) }
func (s *MsgpackSink) WriteString(v string) error { return s.enc.EncodeString(v) }
func (s *MsgpackSink) WriteBytes(v []byte) error  { return s.enc.EncodeBytes(v) }

// MsgpackSource reads a MessagePack stream produced by MsgpackSink.
type MsgpackSource struct {
	dec *msgpack.Decoder
}

// NewMsgpackSource creates a source decoding from r.
func NewMsgpackSource(r io.Reader) *MsgpackSource {
	return &MsgpackSource{dec: msgpack.NewDecoder(r)}
}

func (s *MsgpackSource) ReadBool() (bool, error)     { return s.dec.DecodeBool() }
func (s *MsgpackSource) ReadInt() (int64, error)     { return s.dec.DecodeInt64() }
func (s *MsgpackSource) ReadUint() (uint64, error)   { return s.dec.DecodeUint64() }
func (s *MsgpackSource) ReadFloat() (float64, error) { return s.dec.DecodeFloat64() }
func (s *MsgpackSource) ReadString() (string, error) { return s.dec.DecodeString() }
func (s *MsgpackSource) ReadBytes() ([]byte, error)  { return s.dec.DecodeBytes() }
