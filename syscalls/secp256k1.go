package syscalls

import (
	"math/big"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/btcsuite/btcd/btcec/v2"
)

// curve is the secp256k1 curve every Secp256k1* syscall operates over.
var curve = btcec.S256()

// secp256k1Point is one affine point the HintProcessor's secp256k1Points
// vector owns. Cairo-side syscalls never exchange raw coordinates for an
// existing point: they pass and receive its index into this vector, so a
// point is created once (New/Add/Mul/GetPointFromX) and dereferenced by id
// thereafter (GetXy, or as an operand to a later Add/Mul).
type secp256k1Point struct {
	x, y *big.Int
}

// pushSecp256k1Point appends p to the frame's point vector and returns its
// new id. The vector is append-only: ids are never reused or invalidated
// within the frame's lifetime.
func (h *HintProcessor) pushSecp256k1Point(x, y *big.Int) uint64 {
	id := uint64(len(h.secp256k1Points))
	h.secp256k1Points = append(h.secp256k1Points, secp256k1Point{x: x, y: y})
	return id
}

// secp256k1PointByID resolves id against the frame's point vector,
// responding with InvalidSyscallInputError as a protocol-level revert if
// id is out of range rather than failing the whole syscall dispatch.
func (h *HintProcessor) secp256k1PointByID(id uint64) (secp256k1Point, error) {
	if id >= uint64(len(h.secp256k1Points)) {
		return secp256k1Point{}, &wireFailure{word: blockifier.InvalidSyscallInputError}
	}
	return h.secp256k1Points[id], nil
}

// readU256 reads a u256 encoded as two felts, low limb first, matching the
// Cairo core library's integer.u256 layout.
func readU256(vm blockifier.VM, ptr blockifier.Pointer) (*big.Int, blockifier.Pointer, error) {
	lo, err := vm.ReadFelt(ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	hi, err := vm.ReadFelt(ptr.Add(1))
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	out := new(big.Int).Lsh(hi.BigInt(), 128)
	out.Or(out, lo.BigInt())
	return out, ptr.Add(2), nil
}

func u256Words(v *big.Int) []blockifier.Word {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	lo := new(big.Int).And(v, mask)
	hi := new(big.Int).Rsh(v, 128)
	return []blockifier.Word{
		blockifier.FeltWord(felt.FromBigInt(lo)),
		blockifier.FeltWord(felt.FromBigInt(hi)),
	}
}

// readSecp256k1ID reads a point id: a single felt indexing into the
// frame's secp256k1Points vector, as opposed to a raw coordinate pair.
func readSecp256k1ID(vm blockifier.VM, ptr blockifier.Pointer) (uint64, blockifier.Pointer, error) {
	f, err := vm.ReadFelt(ptr)
	if err != nil {
		return 0, blockifier.Pointer{}, err
	}
	return f.Uint64(), ptr.Add(1), nil
}

func idWords(id uint64, isSome uint64) []blockifier.Word {
	return []blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(id)),
		blockifier.FeltWord(felt.FromUint64(isSome)),
	}
}

// secp256k1New is Secp256k1New's business logic: it validates (x, y) lies
// on the curve; if so, it appends the point to the frame's point vector
// and responds with the new id and is_some=1, or is_some=0 (no point, id
// meaningless) if not — a syscall-level validation failure rather than a
// Go error, since an off-curve point is ordinary untrusted Cairo input,
// not a processor bug.
func (h *HintProcessor) secp256k1New(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	x, next, err := readU256(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	y, next, err := readU256(vm, next)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	if !curve.IsOnCurve(x, y) {
		return idWords(0, 0), next, nil
	}
	id := h.pushSecp256k1Point(x, y)
	return idWords(id, 1), next, nil
}

// secp256k1Add is Secp256k1Add's business logic: curve point addition over
// two existing points, identified by id, producing a new point appended
// to the vector.
func (h *HintProcessor) secp256k1Add(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	id0, next, err := readSecp256k1ID(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	id1, next, err := readSecp256k1ID(vm, next)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	p0, err := h.secp256k1PointByID(id0)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	p1, err := h.secp256k1PointByID(id1)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	x2, y2 := curve.Add(p0.x, p0.y, p1.x, p1.y)
	id2 := h.pushSecp256k1Point(x2, y2)
	return []blockifier.Word{blockifier.FeltWord(felt.FromUint64(id2))}, next, nil
}

// secp256k1Mul is Secp256k1Mul's business logic: scalar multiplication of
// an existing point, identified by id, producing a new point appended to
// the vector.
func (h *HintProcessor) secp256k1Mul(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	id, next, err := readSecp256k1ID(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	scalar, next, err := readU256(vm, next)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	p, err := h.secp256k1PointByID(id)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	x2, y2 := curve.ScalarMult(p.x, p.y, scalar.Bytes())
	id2 := h.pushSecp256k1Point(x2, y2)
	return []blockifier.Word{blockifier.FeltWord(felt.FromUint64(id2))}, next, nil
}

// secp256k1GetPointFromX is Secp256k1GetPointFromX's business logic: it
// recovers the (unique, parity-selected) y coordinate for x, appends the
// resulting point and responds with its id and is_some=1, or is_some=0 if
// x is not on the curve for either parity.
func (h *HintProcessor) secp256k1GetPointFromX(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	x, next, err := readU256(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	yParityFelt, err := vm.ReadFelt(next)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	next = next.Add(1)
	wantOdd := !yParityFelt.IsZero()

	y := secp256k1YFromX(x)
	if y == nil {
		return idWords(0, 0), next, nil
	}
	if y.Bit(0) == 1 != wantOdd {
		y = new(big.Int).Sub(curve.P, y)
	}
	id := h.pushSecp256k1Point(x, y)
	return idWords(id, 1), next, nil
}

// secp256k1YFromX solves y^2 = x^3 + 7 mod p for secp256k1 and returns one
// of the two square roots, or nil if x is not on the curve.
func secp256k1YFromX(x *big.Int) *big.Int {
	p := curve.P
	rhs := new(big.Int).Exp(x, big.NewInt(3), p)
	rhs.Add(rhs, big.NewInt(7))
	rhs.Mod(rhs, p)

	// p mod 4 == 3 for secp256k1, so sqrt(a) = a^((p+1)/4) mod p.
	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2)
	y := new(big.Int).Exp(rhs, exp, p)

	check := new(big.Int).Exp(y, big.NewInt(2), p)
	if check.Cmp(rhs) != 0 {
		return nil
	}
	return y
}

// secp256k1GetXy is Secp256k1GetXy's business logic: it dereferences an
// existing point by id and destructures it back into raw (x, y)
// coordinates, the one syscall that hands coordinates back to Cairo code
// rather than another id.
func (h *HintProcessor) secp256k1GetXy(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	id, next, err := readSecp256k1ID(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	p, err := h.secp256k1PointByID(id)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	return append(u256Words(p.x), u256Words(p.y)...), next, nil
}
