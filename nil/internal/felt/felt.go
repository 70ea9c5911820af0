package felt

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// interfaces
var (
	_ json.Marshaler           = (*Felt)(nil)
	_ json.Unmarshaler         = (*Felt)(nil)
	_ encoding.TextMarshaler   = (*Felt)(nil)
	_ encoding.TextUnmarshaler = (*Felt)(nil)
)

var ErrInvalidFelt = errors.New("invalid felt")

// Felt is a 256-bit big-endian integer as carried by L1 topics and L2 calldata.
// Values are compared numerically, so "0x0F", "0xf" and "f" are the same Felt.
type Felt uint256.Int

func New(val uint64) Felt {
	return Felt(*uint256.NewInt(val))
}

func FromBytes(buf []byte) Felt {
	return Felt(*new(uint256.Int).SetBytes(buf))
}

func FromHash(h common.Hash) Felt {
	return FromBytes(h.Bytes())
}

func FromAddress(addr common.Address) Felt {
	return FromBytes(addr.Bytes())
}

// FromBig fails if the value is negative or does not fit into 256 bits.
func FromBig(b *big.Int) (Felt, error) {
	if b == nil {
		return Felt{}, fmt.Errorf("%w: nil value", ErrInvalidFelt)
	}
	if b.Sign() < 0 {
		return Felt{}, fmt.Errorf("%w: negative value %s", ErrInvalidFelt, b)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return Felt{}, fmt.Errorf("%w: value %s overflows 256 bits", ErrInvalidFelt, b)
	}
	return Felt(*v), nil
}

// FromHex accepts hex with or without the 0x prefix and any number of leading zeros.
func FromHex(s string) (Felt, error) {
	digits := strings.TrimSpace(s)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if digits == "" {
		return Felt{}, fmt.Errorf("%w: empty hex string %q", ErrInvalidFelt, s)
	}

	b, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Felt{}, fmt.Errorf("%w: malformed hex string %q", ErrInvalidFelt, s)
	}
	return FromBig(b)
}

func MustFromHex(s string) Felt {
	f, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Felt) Int() *uint256.Int {
	return (*uint256.Int)(f)
}

func (f Felt) Equal(other Felt) bool {
	return f == other
}

func (f Felt) IsZero() bool {
	return f.Int().IsZero()
}

// Hex returns the canonical form: 0x-prefixed, lowercase, no leading zeros.
func (f Felt) Hex() string {
	return f.Int().Hex()
}

func (f Felt) String() string {
	return f.Hex()
}

// Bytes32 returns the big-endian 32-byte representation.
func (f Felt) Bytes32() [32]byte {
	return f.Int().Bytes32()
}

func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.Hex()), nil
}

func (f *Felt) UnmarshalText(input []byte) error {
	v, err := FromHex(string(input))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Hex())
}

func (f *Felt) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFelt, err)
	}
	return f.UnmarshalText([]byte(s))
}

func EqualSlices(a, b []Felt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
