package types

import "encoding/hex"

type BlockHash [32]byte

func (h BlockHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Header addresses a finalized block. It is only used to pin a point-in-time
// snapshot, so nothing beyond height and hash is carried.
type Header struct {
	Height uint64
	Hash   BlockHash
}

type StorageKey []byte

func (k StorageKey) Hex() string {
	return "0x" + hex.EncodeToString(k)
}

type ChainInfo struct {
	Chain       string
	NodeName    string
	NodeVersion string
}

// RoundInfo is the on-chain descriptor of the running mining round.
type RoundInfo struct {
	Round      uint32
	StartBlock uint64
}
