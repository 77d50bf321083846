package syscalls

import (
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

func TestKeccakRejectsNonBlockAlignedInput(t *testing.T) {
	h := newTestProcessor(newStubState())
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorKeccak))),
		blockifier.FeltWord(felt.FromUint64(100000)),
		blockifier.FeltWord(felt.FromUint64(3)), // not a multiple of 17
		blockifier.PointerWord(blockifier.Pointer{Segment: 1, Offset: 0}),
	})
	vm.segments = append(vm.segments, feltWords(1, 2, 3))

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	word, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	require.True(t, word.Equal(blockifier.InvalidArgumentError))
}

func TestKeccakChargesStepsPerRound(t *testing.T) {
	h := newTestProcessor(newStubState())
	before := h.Ctx.Resources.StepsRemaining()

	input := make([]uint64, keccakBlockWords)
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorKeccak))),
		blockifier.FeltWord(felt.FromUint64(100000)),
		blockifier.FeltWord(felt.FromUint64(uint64(keccakBlockWords))),
		blockifier.PointerWord(blockifier.Pointer{Segment: 1, Offset: 0}),
	})
	vm.segments = append(vm.segments, feltWords(input...))

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)
	require.Equal(t, before-int(h.GasCosts.KeccakRoundCost), h.Ctx.Resources.StepsRemaining())
}
