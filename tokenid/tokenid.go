// Package tokenid converts between uuid256 values and the numeric forms an
// Ethereum client takes for a uint256 token id.
package tokenid

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/posaune0423/uuid256"
)

// ToBig returns id as a non-negative big integer.
func ToBig(id uuid256.U256) *big.Int {
	return new(big.Int).SetBytes(id[:])
}

// FromBig converts x to a U256. Negative values and values wider than 256
// bits fail with uuid256.ErrInvalidU256Format.
func FromBig(x *big.Int) (uuid256.U256, error) {
	if x == nil || x.Sign() < 0 || x.BitLen() > 256 {
		return uuid256.Zero, uuid256.WithContext(uuid256.ErrInvalidU256Format, map[string]interface{}{
			"input": bigString(x),
		})
	}
	var id uuid256.U256
	x.FillBytes(id[:])
	return id, nil
}

// ToDecimal returns id in base 10, the form block explorers show.
func ToDecimal(id uuid256.U256) string {
	return ToBig(id).String()
}

// ToHash returns id as a 32-byte word.
func ToHash(id uuid256.U256) common.Hash {
	return common.BytesToHash(id[:])
}

// FromHash is the inverse of ToHash.
func FromHash(h common.Hash) uuid256.U256 {
	return uuid256.U256(h)
}

// FromUUIDString bridges a UUID string and returns the token id to mint.
func FromUUIDString(s string) (*big.Int, error) {
	id, err := uuid256.UUIDToU256(s)
	if err != nil {
		return nil, err
	}
	return ToBig(id), nil
}

// ToUUIDString recovers the UUID from a token id read back from a contract.
func ToUUIDString(x *big.Int) (string, error) {
	id, err := FromBig(x)
	if err != nil {
		return "", err
	}
	u, err := id.UUID()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func bigString(x *big.Int) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}
