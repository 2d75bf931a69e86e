package payload

// Sink receives primitive values during Save. Concrete sinks define the byte
// layout; this package ships binary, MessagePack, and JSON implementations,
// and any custom format can be plugged in by implementing the interface.
//
// A sink either accepts a value or returns the underlying I/O error
// unchanged. Sinks are not safe for concurrent use.
type Sink interface {
	WriteBool(v bool) error
	WriteInt(v int64) error
	WriteUint(v uint64) error
	WriteFloat(v float64) error
	WriteString(v string) error
	WriteBytes(v []byte) error
}

// Source yields primitive values during Load. Values must be read back in
// the exact order they were written; sources perform no reordering or
// lookahead.
type Source interface {
	ReadBool() (bool, error)
	ReadInt() (int64, error)
	ReadUint() (uint64, error)
	ReadFloat() (float64, error)
	ReadString() (string, error)
	ReadBytes() ([]byte, error)
}

// Saver is implemented by types that know how to write themselves to a Sink.
// Register detects it automatically on *T, so most custom types only need
// the two methods and no registration options:
//
//	type Point struct{ X, Y int64 }
//
//	func (p *Point) SavePayload(s payload.Sink) error {
//	    if err := s.WriteInt(p.X); err != nil {
//	        return err
//	    }
//	    return s.WriteInt(p.Y)
//	}
type Saver interface {
	SavePayload(Sink) error
}

// Loader is the reading half of Saver, detected the same way.
type Loader interface {
	LoadPayload(Source) error
}
