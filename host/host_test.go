package host

import (
	"testing"
	"time"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/mock"
	"github.com/stretchr/testify/require"
)

func testExecutionCtx() *ctxpkg.ExecutionContext {
	return ctxpkg.NewInvoke(ctxpkg.BlockContext{}, ctxpkg.AccountTransactionContext{})
}

func TestExecuteTransactionPhaseSucceeds(t *testing.T) {
	selector := felt.EntryPointSelector(felt.FromUint64(1))
	state := mock.NewState().Deploy(felt.ContractAddress(felt.FromUint64(1)), felt.ClassHash(felt.FromUint64(7)),
		mock.NewClass().WithEntryPoint(blockifier.EntryPointTypeExternal, selector, 0))
	vm := mock.NewVM(blockifier.RunResult{Retdata: []felt.Felt{felt.FromUint64(5)}})
	h := New(state, vm)

	frame, err := h.ExecuteTransactionPhase(entrypoint.CallDescriptor{
		StorageAddress: felt.ContractAddress(felt.FromUint64(1)),
		Selector:       selector,
	}, testExecutionCtx())
	require.NoError(t, err)
	mock.Verify(t, frame).Ok().Retdata(felt.FromUint64(5))
}

func TestExecuteTransactionPhaseRecoversPanic(t *testing.T) {
	selector := felt.EntryPointSelector(felt.FromUint64(1))
	state := mock.NewState().Deploy(felt.ContractAddress(felt.FromUint64(1)), felt.ClassHash(felt.FromUint64(7)),
		mock.NewClass().WithEntryPoint(blockifier.EntryPointTypeExternal, selector, 0))
	vm := mock.NewVM(blockifier.RunResult{})
	vm.Panic = "vm exploded"
	h := New(state, vm)

	_, err := h.ExecuteTransactionPhase(entrypoint.CallDescriptor{
		StorageAddress: felt.ContractAddress(felt.FromUint64(1)),
		Selector:       selector,
	}, testExecutionCtx())
	require.ErrorIs(t, err, ErrExecutionPanicked)
}

func TestExecuteTransactionPhaseRespectsTimeout(t *testing.T) {
	selector := felt.EntryPointSelector(felt.FromUint64(1))
	state := mock.NewState().Deploy(felt.ContractAddress(felt.FromUint64(1)), felt.ClassHash(felt.FromUint64(7)),
		mock.NewClass().WithEntryPoint(blockifier.EntryPointTypeExternal, selector, 0))
	vm := mock.NewVM(blockifier.RunResult{})
	vm.Delay = 50 * time.Millisecond
	h := New(state, vm)
	h.Timeout = 5 * time.Millisecond

	_, err := h.ExecuteTransactionPhase(entrypoint.CallDescriptor{
		StorageAddress: felt.ContractAddress(felt.FromUint64(1)),
		Selector:       selector,
	}, testExecutionCtx())
	require.ErrorIs(t, err, ErrExecutionTimedOut)
}
