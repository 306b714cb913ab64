package mainchain

import (
	"encoding/binary"
	"encoding/hex"
)

// Hash is an opaque fixed-size digest identifying a committed abstract.
type Hash [32]byte

// HashFromInts deterministically packs (blockNumber, ownerID) into a Hash,
// matching the original TendermintChainMock's behaviour of hashing those
// two ints rather than the block's actual contents.
func HashFromInts(blockNumber, ownerID int) Hash {
	var h Hash
	binary.BigEndian.PutUint32(h[0:4], uint32(blockNumber))
	binary.BigEndian.PutUint32(h[4:8], uint32(ownerID))
	return h
}

func (h Hash) Equal(other Hash) bool {
	return h == other
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
