package payload

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// CustomTypeNr is the reserved type number for types without a
// registry-assigned number. Two TypeIDs carrying this number compare by
// their stable keys instead.
const CustomTypeNr uint16 = 0

// TypeID identifies one concrete type at run time.
//
// Nr is the small integer assigned by a Registry; the built-in types occupy
// a fixed low range and everything else carries CustomTypeNr. Key is an
// opaque stable key derived from the Go type (package path plus name), which
// carries identity when Nr is the custom sentinel.
//
// Identity never depends on runtime pointer values, so two TypeIDs for the
// same concrete type compare equal no matter where they were produced.
type TypeID struct {
	Nr  uint16
	Key string
}

// Registered reports whether id carries a registry-assigned number.
func (id TypeID) Registered() bool { return id.Nr != CustomTypeNr }

// Equal reports whether two identities denote the same concrete type.
// For registered types the number alone governs; the key comparison only
// happens for custom types.
func (id TypeID) Equal(other TypeID) bool {
	if id.Nr != other.Nr {
		return false
	}
	if id.Nr != CustomTypeNr {
		return true
	}
	return id.Key == other.Key
}

func (id TypeID) String() string {
	if id.Nr != CustomTypeNr {
		return fmt.Sprintf("%s#%d", id.Key, id.Nr)
	}
	return id.Key
}

// tokenOf computes the type token for an ordered identity sequence.
//
// The token is a coarse pre-filter: equal sequences always hash to the same
// token, and unequal tokens prove the sequences differ. Only the parts of an
// identity that participate in Equal are hashed, so a registered type
// contributes its number and a custom type contributes its key.
func tokenOf(ids []TypeID) uint32 {
	h := xxhash.New()
	var buf [2]byte
	for _, id := range ids {
		binary.LittleEndian.PutUint16(buf[:], id.Nr)
		h.Write(buf[:])
		if id.Nr == CustomTypeNr {
			h.WriteString(id.Key)
		}
		h.Write([]byte{0xff})
	}
	return uint32(h.Sum64())
}

// emptyToken is the token of the zero-length type sequence.
var emptyToken = tokenOf(nil)
