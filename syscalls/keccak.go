package syscalls

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"golang.org/x/crypto/sha3"
)

// keccakBlockWords is the number of felts one Keccak permutation round
// consumes; a partial final block is an invalid argument, matching the
// Rust original's rejection of non-block-aligned Keccak input.
const keccakBlockWords = 17

// keccak is Keccak's business logic: it hashes the input in
// keccakBlockWords-sized blocks (charging KeccakRoundCost per block,
// bulk-subtracted from the shared step budget; no other syscall charges a
// size-dependent cost) and responds with the 256-bit
// digest split into two 128-bit felts, high half first.
func (h *HintProcessor) keccak(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readKeccakRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	if len(req.Input)%keccakBlockWords != 0 {
		return nil, blockifier.Pointer{}, &wireFailure{word: blockifier.InvalidArgumentError}
	}

	rounds := len(req.Input) / keccakBlockWords
	if err := h.Ctx.SubtractSteps(rounds * int(h.GasCosts.KeccakRoundCost)); err != nil {
		return nil, blockifier.Pointer{}, fmt.Errorf("keccak: %w", err)
	}

	hasher := sha3.NewLegacyKeccak256()
	for _, w := range req.Input {
		b := w.Bytes32()
		hasher.Write(b[:])
	}
	digest := hasher.Sum(nil)

	hi := felt.FromBytesBigEndian(digest[:16])
	lo := felt.FromBytesBigEndian(digest[16:])

	return []blockifier.Word{blockifier.FeltWord(hi), blockifier.FeltWord(lo)}, next, nil
}
