package syscalls

import (
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/stretchr/testify/require"
)

func TestGetBlockHashRespondsWithHash(t *testing.T) {
	h := newTestProcessor(newStubState())
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorGetBlockHash))),
		blockifier.FeltWord(felt.FromUint64(10000)),
		blockifier.FeltWord(felt.FromUint64(42)),
	})

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	got, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	require.True(t, got.Equal(felt.FromUint64(42)))
}

func TestGetBlockHashOutOfRangeWritesProtocolErrorWord(t *testing.T) {
	h := newTestProcessor(newStubState())
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorGetBlockHash))),
		blockifier.FeltWord(felt.FromUint64(10000)),
		blockifier.FeltWord(felt.FromUint64(outOfRangeBlockNumber)),
	})

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	word, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	require.True(t, word.Equal(blockifier.BlockNumberOutOfRangeError))
}
