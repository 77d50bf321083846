package syscalls

import (
	"fmt"
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/gascost"
	"github.com/stretchr/testify/require"
)

type stubState struct {
	storage map[[32]byte]felt.Felt
}

func newStubState() *stubState { return &stubState{storage: make(map[[32]byte]felt.Felt)} }

func (s *stubState) GetClassHashAt(felt.ContractAddress) (felt.ClassHash, error) { return felt.ClassHash{}, nil }
func (s *stubState) GetCompiledContractClass(felt.ClassHash) (blockifier.CompiledClass, error) {
	return nil, nil
}
func (s *stubState) GetStorageAt(_ felt.ContractAddress, k felt.StorageKey) (felt.Felt, error) {
	return s.storage[felt.Felt(k).Bytes32()], nil
}
func (s *stubState) SetStorageAt(_ felt.ContractAddress, k felt.StorageKey, v felt.Felt) error {
	s.storage[felt.Felt(k).Bytes32()] = v
	return nil
}
func (s *stubState) SetClassHashAt(felt.ContractAddress, felt.ClassHash) error { return nil }

// GetBlockHash treats any block number at or past outOfRangeBlockNumber as
// outside the queryable window, so tests can exercise the out-of-range
// protocol failure without a real finality-window implementation.
const outOfRangeBlockNumber = 1_000_000

func (s *stubState) GetBlockHash(n uint64) (felt.Felt, error) {
	if n >= outOfRangeBlockNumber {
		return felt.Felt{}, fmt.Errorf("stub: %w", blockifier.ErrBlockNumberOutOfRange)
	}
	return felt.FromUint64(n), nil
}

func newTestProcessor(state entrypoint.State) *HintProcessor {
	ctx := ctxpkg.NewInvoke(ctxpkg.BlockContext{InvokeTxMaxNSteps: 1_000_000}, ctxpkg.AccountTransactionContext{})
	frame := entrypoint.NewCallInfo(entrypoint.CallDescriptor{StorageAddress: felt.ContractAddress(felt.FromUint64(1))})
	return &HintProcessor{
		State:    state,
		Ctx:      ctx,
		Call:     frame.Call,
		Frame:    frame,
		GasCosts: gascost.Default(),
	}
}

func op(offset int) blockifier.Operand { return blockifier.Operand{CellOffset: offset} }

func TestExecuteSyscallStorageWriteThenRead(t *testing.T) {
	// Both syscalls run against one VM, laid out back-to-back in the same
	// segment the way a compiled frame actually addresses its successive
	// syscall structs: the second call's operand must land exactly where
	// the first call's argument block ends, per the syscall pointer cursor
	// ExecuteSyscall enforces between calls.
	state := newStubState()
	h := newTestProcessor(state)

	key := felt.FromUint64(42)
	value := felt.FromUint64(1337)
	cost, _ := h.GasCosts.Cost("storage_write")
	readCost, _ := h.GasCosts.Cost("storage_read")

	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorStorageWrite))),
		blockifier.FeltWord(felt.FromUint64(10000)),
		blockifier.FeltWord(key),
		blockifier.FeltWord(value),
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorStorageRead))),
		blockifier.FeltWord(felt.FromUint64(10000)),
		blockifier.FeltWord(key),
	})

	next, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)
	require.Equal(t, 1, len(h.Frame.AccessedStorageKeys))
	require.Equal(t, blockifier.Pointer{Segment: 0, Offset: 4}, next)

	remainingGas, _ := vm.ReadFelt(blockifier.Pointer{Offset: 1})
	require.Equal(t, uint64(10000)-cost, remainingGas.Uint64())

	_, err = h.ExecuteSyscall(vm, op(4))
	require.NoError(t, err)

	got, _ := vm.ReadFelt(blockifier.Pointer{Offset: 6})
	require.True(t, got.Equal(value))

	remainingGas2, _ := vm.ReadFelt(blockifier.Pointer{Offset: 5})
	require.Equal(t, uint64(10000)-readCost, remainingGas2.Uint64())
}

func TestExecuteSyscallOutOfGasWritesProtocolErrorWord(t *testing.T) {
	state := newStubState()
	h := newTestProcessor(state)

	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorStorageRead))),
		blockifier.FeltWord(felt.FromUint64(1)),
		blockifier.FeltWord(felt.FromUint64(42)),
	})

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)

	word, _ := vm.ReadFelt(blockifier.Pointer{Offset: 2})
	require.True(t, word.Equal(blockifier.OutOfGasError))
}

func TestExecuteSyscallEmitEventStampsMonotonicOrdinal(t *testing.T) {
	state := newStubState()
	h := newTestProcessor(state)

	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(uint64(SelectorEmitEvent))),
		blockifier.FeltWord(felt.FromUint64(10000)),
		blockifier.FeltWord(felt.FromUint64(1)), // keys length
		blockifier.PointerWord(blockifier.Pointer{Segment: 1, Offset: 0}),
		blockifier.FeltWord(felt.FromUint64(1)), // data length
		blockifier.PointerWord(blockifier.Pointer{Segment: 1, Offset: 1}),
	})
	vm.segments = append(vm.segments, feltWords(100, 200))

	_, err := h.ExecuteSyscall(vm, op(0))
	require.NoError(t, err)
	require.Len(t, h.Frame.Execution.Events, 1)
	require.Equal(t, uint64(0), h.Frame.Execution.Events[0].Order)
	require.Equal(t, uint64(100), h.Frame.Execution.Events[0].Keys[0].Uint64())
	require.Equal(t, uint64(200), h.Frame.Execution.Events[0].Data[0].Uint64())
}

func TestExecuteSyscallUnknownSelectorErrors(t *testing.T) {
	h := newTestProcessor(newStubState())
	vm := newMemVM([]blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(999)),
		blockifier.FeltWord(felt.FromUint64(10000)),
	})
	_, err := h.ExecuteSyscall(vm, op(0))
	require.ErrorIs(t, err, blockifier.ErrUnknownSyscallSelector)
}
