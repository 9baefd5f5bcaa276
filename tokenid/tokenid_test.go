package tokenid

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/posaune0423/uuid256"
)

const bridgedHex = "0x0000000000000000000000000000000001948b2e5890700080000123456789ab"

func TestToBigAndDecimal(t *testing.T) {
	id := uuid256.MustParseU256(bridgedHex)

	want, _ := new(big.Int).SetString("01948b2e5890700080000123456789ab", 16)
	if got := ToBig(id); got.Cmp(want) != 0 {
		t.Errorf("ToBig = %s, want %s", got, want)
	}
	if got := ToDecimal(id); got != want.String() {
		t.Errorf("ToDecimal = %s, want %s", got, want.String())
	}
	if got := ToDecimal(uuid256.Zero); got != "0" {
		t.Errorf("ToDecimal(Zero) = %s, want 0", got)
	}
}

func TestFromBig(t *testing.T) {
	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	id, err := FromBig(maxVal)
	if err != nil {
		t.Fatalf("FromBig(2^256-1): %v", err)
	}
	if ToBig(id).Cmp(maxVal) != 0 {
		t.Errorf("round trip = %s", ToBig(id))
	}

	for name, x := range map[string]*big.Int{
		"nil":      nil,
		"negative": big.NewInt(-1),
		"2^256":    new(big.Int).Lsh(big.NewInt(1), 256),
	} {
		if _, err := FromBig(x); !errors.Is(err, uuid256.ErrInvalidU256Format) {
			t.Errorf("FromBig(%s): expected ErrInvalidU256Format, got %v", name, err)
		}
	}
}

func TestHash(t *testing.T) {
	id := uuid256.MustParseU256(bridgedHex)

	h := ToHash(id)
	if h.Hex() != bridgedHex {
		t.Errorf("ToHash = %s, want %s", h.Hex(), bridgedHex)
	}
	if FromHash(h) != id {
		t.Errorf("FromHash = %s, want %s", FromHash(h), id)
	}
	if got := FromHash(common.HexToHash("0x01")); got.Hex()[65] != '1' {
		t.Errorf("FromHash(0x01) = %s", got)
	}
}

func TestUUIDStrings(t *testing.T) {
	const u = "550e8400-e29b-41d4-a716-446655440000"

	tokenID, err := FromUUIDString(u)
	if err != nil {
		t.Fatalf("FromUUIDString: %v", err)
	}
	if tokenID.BitLen() > 128 {
		t.Errorf("bridged token id uses %d bits", tokenID.BitLen())
	}

	back, err := ToUUIDString(tokenID)
	if err != nil {
		t.Fatalf("ToUUIDString: %v", err)
	}
	if back != u {
		t.Errorf("round trip = %s, want %s", back, u)
	}

	if _, err := FromUUIDString("nope"); !errors.Is(err, uuid256.ErrInvalidUUIDFormat) {
		t.Errorf("expected ErrInvalidUUIDFormat, got %v", err)
	}

	wide := new(big.Int).Lsh(big.NewInt(1), 200)
	if _, err := ToUUIDString(wide); !uuid256.IsUpper128NotZero(err) {
		t.Errorf("expected ErrUpper128NotZero, got %v", err)
	}
}
