package types

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/stakepad/stakepad-round-indexer/pkg"
)

const AccountIDLen = 32

// AccountID is the raw 32-byte public key of an on-chain account. Storage maps
// are joined on this value, never on a formatted address.
type AccountID [AccountIDLen]byte

func NewAccountID(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDLen {
		return id, fmt.Errorf("account id must be %d bytes, got %d", AccountIDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (a AccountID) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// SS58 formats the account as an address for the given network prefix.
func (a AccountID) SS58(prefix uint16) string {
	addr, err := pkg.EncodeSS58(a[:], prefix)
	if err != nil {
		// prefix was validated at config load, fall back to hex
		return a.Hex()
	}
	return addr
}

func (a AccountID) Compare(b AccountID) int {
	return bytes.Compare(a[:], b[:])
}
