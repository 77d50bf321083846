package syscalls

import (
	"math/big"
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

func TestSecp256k1YFromXRecoversOnCurvePoint(t *testing.T) {
	gx := curve.Gx
	y := secp256k1YFromX(gx)
	require.NotNil(t, y)
	require.True(t, curve.IsOnCurve(gx, y))
}

func TestSecp256k1YFromXRejectsOffCurveX(t *testing.T) {
	// Gx+4 is an x with no valid y: x^3 + 7 is not a quadratic residue mod
	// p for it (Euler's criterion), so neither parity yields a curve point.
	x := new(big.Int).Add(curve.Gx, big.NewInt(4))
	y := secp256k1YFromX(x)
	require.Nil(t, y)
}

func TestU256RoundTrip(t *testing.T) {
	v := new(big.Int).SetUint64(0xdeadbeef)
	words := u256Words(v)
	require.Len(t, words, 2)
	require.Equal(t, uint64(0xdeadbeef), words[0].Felt.Uint64())
	require.Equal(t, uint64(0), words[1].Felt.Uint64())
}

func u256FeltWords(v *big.Int) []blockifier.Word {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	lo := new(big.Int).And(v, mask)
	hi := new(big.Int).Rsh(v, 128)
	return []blockifier.Word{
		blockifier.FeltWord(felt.FromBigInt(lo)),
		blockifier.FeltWord(felt.FromBigInt(hi)),
	}
}

// TestSecp256k1NewThenGetXyRoundTripsThroughPointID exercises the full
// append-only point vector: New validates the generator point and hands
// back id 0, and a later GetXy against that id destructures it back into
// the same raw coordinates, never re-exchanging them directly.
func TestSecp256k1NewThenGetXyRoundTripsThroughPointID(t *testing.T) {
	h := newTestProcessor(newStubState())

	words := []blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorSecp256k1New))),
		blockifier.FeltWord(felt.FromUint64(100000)),
	}
	words = append(words, u256FeltWords(curve.Gx)...)
	words = append(words, u256FeltWords(curve.Gy)...)
	newCallLen := len(words)
	words = append(words,
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorSecp256k1GetXy))),
		blockifier.FeltWord(felt.FromUint64(100000)),
		blockifier.FeltWord(felt.FromUint64(0)), // id from the New call above
	)
	vm := newMemVM(words)

	next, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)
	require.Equal(t, blockifier.Pointer{Segment: 0, Offset: newCallLen}, next)

	id, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	isSome, _ := vm.ReadFelt(blockifier.Pointer{Offset: 3})
	require.Equal(t, uint64(0), id.Uint64())
	require.Equal(t, uint64(1), isSome.Uint64())
	require.Len(t, h.secp256k1Points, 1)

	_, err = h.ExecuteSyscall(vm, op(newCallLen))
	require.NoError(t, err)

	xyOffset := newCallLen + 2
	gotX := new(big.Int)
	lo, _ := vm.ReadFelt(blockifier.Pointer{Offset: xyOffset})
	hi, _ := vm.ReadFelt(blockifier.Pointer{Offset: xyOffset + 1})
	gotX.Or(gotX, hi.BigInt())
	gotX.Lsh(gotX, 128)
	gotX.Or(gotX, lo.BigInt())
	require.Equal(t, 0, gotX.Cmp(curve.Gx))
}

// TestSecp256k1NewRejectsOffCurvePoint mirrors the protocol's
// syscall-level validation failure: an off-curve (x, y) yields is_some=0
// rather than a dispatch error, and never grows the point vector.
func TestSecp256k1NewRejectsOffCurvePoint(t *testing.T) {
	h := newTestProcessor(newStubState())
	offCurveY := new(big.Int).Add(curve.Gy, big.NewInt(1))

	words := []blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorSecp256k1New))),
		blockifier.FeltWord(felt.FromUint64(100000)),
	}
	words = append(words, u256FeltWords(curve.Gx)...)
	words = append(words, u256FeltWords(offCurveY)...)
	vm := newMemVM(words)

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	isSome, _ := vm.ReadFelt(blockifier.Pointer{Offset: 3})
	require.Equal(t, uint64(0), isSome.Uint64())
	require.Empty(t, h.secp256k1Points)
}

// TestSecp256k1GetXyRejectsOutOfRangeID asserts the InvalidSyscallInput
// protocol failure the review called for: an id the point vector has
// never populated must not be treated as a dispatch-level bug.
func TestSecp256k1GetXyRejectsOutOfRangeID(t *testing.T) {
	h := newTestProcessor(newStubState())
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorSecp256k1GetXy))),
		blockifier.FeltWord(felt.FromUint64(100000)),
		blockifier.FeltWord(felt.FromUint64(7)),
	})

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	word, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	require.True(t, word.Equal(blockifier.InvalidSyscallInputError))
}
