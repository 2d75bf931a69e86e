package payload

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodecSuite struct {
	suite.Suite
	reg *Registry
}

func (s *CodecSuite) SetupTest() {
	s.reg = NewRegistry()
	Register[point](s.reg)
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

// sample builds a tuple exercising every primitive plus a custom type.
func (s *CodecSuite) sample() *Values {
	return MustTuple(s.reg,
		true,
		int64(-42),
		uint64(42),
		3.5,
		"hi",
		[]byte{1, 2, 3},
		[]byte(nil),
		point{X: 3, Y: 4},
	)
}

// target builds a zero-valued tuple with the same shape as sample.
func (s *CodecSuite) target() *Values {
	return MustTuple(s.reg,
		false,
		int64(0),
		uint64(0),
		0.0,
		"",
		[]byte(nil),
		[]byte{9},
		point{},
	)
}

// assertRoundTrip saves sample through one codec, loads it into a
// structurally identical target, and requires the rendered contents to be
// reproduced exactly.
func (s *CodecSuite) assertRoundTrip(sink Sink, finish func() ([]byte, error), open func([]byte) (Source, error)) {
	orig := s.sample()
	s.Require().NoError(SaveTuple(orig, sink))
	data, err := finish()
	s.Require().NoError(err)

	src, err := open(data)
	s.Require().NoError(err)
	loaded := s.target()
	s.Require().NoError(LoadTuple(loaded, src))

	s.Assert().Equal(Stringify(orig), Stringify(loaded))
}

func (s *CodecSuite) TestBinaryRoundTrip() {
	var buf bytes.Buffer
	s.assertRoundTrip(
		NewBinarySink(&buf),
		func() ([]byte, error) { return buf.Bytes(), nil },
		func(data []byte) (Source, error) {
			return NewBinarySource(bytes.NewReader(data)), nil
		},
	)
}

func (s *CodecSuite) TestMsgpackRoundTrip() {
	var buf bytes.Buffer
	s.assertRoundTrip(
		NewMsgpackSink(&buf),
		func() ([]byte, error) { return buf.Bytes(), nil },
		func(data []byte) (Source, error) {
			return NewMsgpackSource(bytes.NewReader(data)), nil
		},
	)
}

func (s *CodecSuite) TestJSONRoundTrip() {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	s.assertRoundTrip(
		sink,
		func() ([]byte, error) {
			if err := sink.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		func(data []byte) (Source, error) {
			return NewJSONSource(data)
		},
	)
}

func (s *CodecSuite) TestCompressedRoundTrip() {
	var buf bytes.Buffer
	sink, closer := NewCompressedSink(&buf)
	s.assertRoundTrip(
		sink,
		func() ([]byte, error) { return nil, closer.Close() },
		func([]byte) (Source, error) {
			return NewCompressedSource(bytes.NewReader(buf.Bytes())), nil
		},
	)
}

func (s *CodecSuite) TestJSONSinkProducesAnArray() {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	s.Require().NoError(sink.WriteInt(42))
	s.Require().NoError(sink.WriteString("hi"))
	s.Require().NoError(sink.Close())
	s.Assert().JSONEq(`[42, "hi"]`, buf.String())
}

func (s *CodecSuite) TestJSONEmptySink() {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	s.Require().NoError(sink.Close())
	s.Assert().Equal("[]", buf.String())
}

func (s *CodecSuite) TestJSONSourceRejectsInvalidInput() {
	_, err := NewJSONSource([]byte(`{not valid}`))
	s.Assert().ErrorIs(err, ErrInvalidJSON)

	_, err = NewJSONSource([]byte(`{"an": "object"}`))
	s.Assert().Error(err)
}

func (s *CodecSuite) TestJSONNilBytesRoundTrip() {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)
	orig := MustTuple(s.reg, []byte(nil))
	s.Require().NoError(SaveTuple(orig, sink))
	s.Require().NoError(sink.Close())
	s.Assert().Equal("[null]", buf.String())

	src, err := NewJSONSource(buf.Bytes())
	s.Require().NoError(err)
	loaded := MustTuple(s.reg, []byte{9})
	s.Require().NoError(LoadTuple(loaded, src))
	s.Assert().Equal(Stringify(orig), Stringify(loaded))
}

func (s *CodecSuite) TestJSONSourceTypeMismatch() {
	src, err := NewJSONSource([]byte(`["hi"]`))
	s.Require().NoError(err)
	_, err = src.ReadInt()
	s.Assert().Error(err)
}

func (s *CodecSuite) TestJSONSourceExhaustion() {
	src, err := NewJSONSource([]byte(`[1]`))
	s.Require().NoError(err)
	_, err = src.ReadInt()
	s.Require().NoError(err)
	_, err = src.ReadInt()
	s.Assert().ErrorIs(err, io.ErrUnexpectedEOF)
}

func (s *CodecSuite) TestBinaryRejectsInvalidBoolByte() {
	src := NewBinarySource(bytes.NewReader([]byte{7}))
	_, err := src.ReadBool()
	s.Assert().Error(err)
}

func (s *CodecSuite) TestBinaryRejectsOversizedFrame() {
	var buf bytes.Buffer
	sink := NewBinarySink(&buf)
	s.Require().NoError(sink.WriteUint(maxFrame + 1))
	src := NewBinarySource(bytes.NewReader(buf.Bytes()))
	_, err := src.ReadBytes()
	s.Assert().Error(err)
}

func (s *CodecSuite) TestTruncatedStreamFails() {
	var buf bytes.Buffer
	s.Require().NoError(SaveTuple(s.sample(), NewBinarySink(&buf)))
	trunc := buf.Bytes()[:buf.Len()/2]

	err := LoadTuple(s.target(), NewBinarySource(bytes.NewReader(trunc)))
	s.Assert().Error(err)
}

func (s *CodecSuite) TestSinkErrorsPropagateUnchanged() {
	wantErr := errors.New("connection reset")
	err := SaveTuple(s.sample(), NewBinarySink(&failWriter{err: wantErr}))
	s.Assert().ErrorIs(err, wantErr)
}
