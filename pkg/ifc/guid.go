package ifc

import (
	"math/big"

	"github.com/google/uuid"
)

// ifcBase64 is the IFC-specific base64 alphabet used by GlobalId compression
const ifcBase64 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"

// NewGlobalID returns a fresh IfcGloballyUniqueId: a random RFC 4122 UUID
// compressed into 22 characters of the IFC base64 alphabet. 22 digits carry
// 132 bits, so the leading digit only ever uses the low 2 bits.
func NewGlobalID() string {
	id := uuid.New()
	return compressGUID(id)
}

func compressGUID(id uuid.UUID) string {
	n := new(big.Int).SetBytes(id[:])
	radix := big.NewInt(64)
	rem := new(big.Int)

	var out [22]byte
	for i := 21; i >= 0; i-- {
		n.DivMod(n, radix, rem)
		out[i] = ifcBase64[rem.Int64()]
	}
	return string(out[:])
}
