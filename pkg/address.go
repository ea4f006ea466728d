package pkg

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	ss58ChecksumPrefix = "SS58PRE"
	ss58ChecksumLen    = 2
	ss58PublicKeyLen   = 32
	ss58MaxPrefix      = 16383
)

// EncodeSS58 formats a 32-byte public key as an SS58 address for the given
// network prefix. Prefixes above 63 use the two-byte identifier form.
func EncodeSS58(pub []byte, prefix uint16) (string, error) {
	if len(pub) != ss58PublicKeyLen {
		return "", fmt.Errorf("public key must be %d bytes, got %d", ss58PublicKeyLen, len(pub))
	}

	ident, err := ss58Ident(prefix)
	if err != nil {
		return "", err
	}

	payload := append(ident, pub...)
	checksum := ss58Checksum(payload)

	return base58.Encode(append(payload, checksum[:ss58ChecksumLen]...)), nil
}

func ss58Ident(prefix uint16) ([]byte, error) {
	switch {
	case prefix < 64:
		return []byte{byte(prefix)}, nil
	case prefix <= ss58MaxPrefix:
		first := byte((prefix&0b0000_0000_1111_1100)>>2) | 0b0100_0000
		second := byte(prefix>>8) | byte((prefix&0b0000_0000_0000_0011)<<6)
		return []byte{first, second}, nil
	default:
		return nil, fmt.Errorf("ss58 prefix %d out of range", prefix)
	}
}

func ss58Checksum(payload []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append([]byte(ss58ChecksumPrefix), payload...))
}
