// Package felt implements the 252-bit StarkNet field element used
// throughout the execution core: class hashes, contract addresses, storage
// keys, calldata, and all syscall request/response fields share this type.
package felt

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Prime is the StarkNet field prime: 2**251 + 17*2**192 + 1.
var Prime = func() *big.Int {
	p := new(big.Int)
	p.SetString("3618502788666131213697322783095070105623107215331596699973092056135872020481", 10)
	return p
}()

// Felt is a field element modulo Prime. The zero value is the felt 0.
type Felt struct {
	v big.Int
}

// Zero is the felt 0.
var Zero = Felt{}

// FromUint64 builds a felt from a uint64.
func FromUint64(n uint64) Felt {
	var f Felt
	f.v.SetUint64(n)
	return f
}

// FromBigInt reduces an arbitrary big.Int modulo Prime.
func FromBigInt(n *big.Int) Felt {
	var f Felt
	f.v.Mod(n, Prime)
	return f
}

// FromBytesBigEndian interprets b as a big-endian integer, reduced mod Prime.
func FromBytesBigEndian(b []byte) Felt {
	var f Felt
	f.v.SetBytes(b)
	f.v.Mod(&f.v, Prime)
	return f
}

// FromHex parses a "0x..." hex literal.
func FromHex(s string) (Felt, error) {
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return Felt{}, fmt.Errorf("felt: %q is not a 0x-prefixed hex literal", s)
	}
	b, err := hex.DecodeString(pad(s[2:]))
	if err != nil {
		return Felt{}, fmt.Errorf("felt: invalid hex literal %q: %w", s, err)
	}
	return FromBytesBigEndian(b), nil
}

func pad(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}

// IsZero reports whether f is the felt 0.
func (f Felt) IsZero() bool {
	return f.v.Sign() == 0
}

// Equal reports whether f and other represent the same field element.
func (f Felt) Equal(other Felt) bool {
	return f.v.Cmp(&other.v) == 0
}

// BigInt returns a copy of the underlying big.Int.
func (f Felt) BigInt() *big.Int {
	return new(big.Int).Set(&f.v)
}

// Uint64 returns the felt truncated to a uint64; callers must only use it
// where the value is known to fit (e.g. loop counters, ordinals).
func (f Felt) Uint64() uint64 {
	return f.v.Uint64()
}

// Bytes32 returns the felt as a 32-byte big-endian array, zero-padded.
func (f Felt) Bytes32() [32]byte {
	var out [32]byte
	b := f.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// Hex renders the felt as a "0x"-prefixed hex string with no leading zeros
// (other than a single "0" for the zero value), matching the rendering used
// in error-trace text (see context.ExecutionContext.ErrorTrace).
func (f Felt) Hex() string {
	return "0x" + f.v.Text(16)
}

// String implements fmt.Stringer.
func (f Felt) String() string {
	return f.Hex()
}

// Add returns f + other, reduced mod Prime.
func (f Felt) Add(other Felt) Felt {
	var out Felt
	out.v.Add(&f.v, &other.v)
	out.v.Mod(&out.v, Prime)
	return out
}

// ContractAddress, ClassHash and StorageKey are Felt under named types, so
// that call sites cannot accidentally pass a selector where an address is
// expected and vice versa.
type (
	ContractAddress Felt
	ClassHash       Felt
	StorageKey      Felt
	EntryPointSelector Felt
)

// ContractAddressZero is the zero contract address (used as the tx-root caller).
var ContractAddressZero = ContractAddress{}

// ClassHashZero is the zero class hash, meaning "undeployed" per State.GetClassHashAt.
var ClassHashZero = ClassHash{}

// IsZero reports whether the address is the zero address.
func (a ContractAddress) IsZero() bool { return Felt(a).IsZero() }

// Equal reports whether two contract addresses are the same.
func (a ContractAddress) Equal(b ContractAddress) bool { return Felt(a).Equal(Felt(b)) }

// Hex renders the contract address as hex, used in error-trace text.
func (a ContractAddress) Hex() string { return Felt(a).Hex() }

// String implements fmt.Stringer.
func (a ContractAddress) String() string { return a.Hex() }

// IsZero reports whether the class hash is the zero hash ("undeployed").
func (c ClassHash) IsZero() bool { return Felt(c).IsZero() }

// Equal reports whether two class hashes are the same.
func (c ClassHash) Equal(other ClassHash) bool { return Felt(c).Equal(Felt(other)) }

// Hex renders the class hash as hex.
func (c ClassHash) Hex() string { return Felt(c).Hex() }

// String implements fmt.Stringer.
func (c ClassHash) String() string { return c.Hex() }

// Equal reports whether two storage keys are the same.
func (k StorageKey) Equal(other StorageKey) bool { return Felt(k).Equal(Felt(other)) }

// Hex renders the storage key as hex.
func (k StorageKey) Hex() string { return Felt(k).Hex() }

// String implements fmt.Stringer.
func (k StorageKey) String() string { return k.Hex() }

// selectorMask is the starknet_keccak truncation mask: the low 250 bits of
// a Keccak-256 digest, reserving the top two bits the same way the real
// network's entry-point selector derivation does.
var selectorMask = func() *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), 250)
	mask.Sub(mask, big.NewInt(1))
	return mask
}()

// SelectorFromName derives the entry-point selector a Cairo compiler
// assigns a function from its name: Keccak-256 of the ASCII name, masked
// to 250 bits (starknet_keccak). ConstructorEntryPointName's selector is
// this function applied to "constructor", used whenever a class with no
// declared constructor still needs a well-known selector to record on its
// synthesized CallInfo.
func SelectorFromName(name string) EntryPointSelector {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(name))
	digest := new(big.Int).SetBytes(hasher.Sum(nil))
	digest.And(digest, selectorMask)
	return EntryPointSelector(FromBigInt(digest))
}

// IsZero reports whether the selector is the zero selector.
func (s EntryPointSelector) IsZero() bool { return Felt(s).IsZero() }

// Equal reports whether two selectors are the same.
func (s EntryPointSelector) Equal(other EntryPointSelector) bool { return Felt(s).Equal(Felt(other)) }

// Hex renders the selector as hex.
func (s EntryPointSelector) Hex() string { return Felt(s).Hex() }

// String implements fmt.Stringer.
func (s EntryPointSelector) String() string { return s.Hex() }
