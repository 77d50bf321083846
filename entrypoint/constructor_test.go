package entrypoint

import (
	"testing"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/mock"
	"github.com/stretchr/testify/require"
)

func TestExecuteConstructorDispatchesExplicitConstructor(t *testing.T) {
	state := mock.NewState()
	ch := classHash(1)
	ctorSelector := felt.EntryPointSelector(felt.FromUint64(0xc0))
	state.Deploy(addr(1), ch, mock.NewClass().
		WithEntryPoint(blockifier.EntryPointTypeConstructor, ctorSelector, 0).
		WithConstructor(ctorSelector))
	vm := mock.NewVM(blockifier.RunResult{})
	d := NewDispatcher(state, vm, testCtx(), noopFactory)

	frame, err := d.ExecuteConstructor(ch, addr(1), felt.ContractAddressZero, nil, 1000)
	require.NoError(t, err)
	require.True(t, frame.Call.Selector.Equal(ctorSelector))
}

func TestExecuteConstructorSynthesizesEmptyConstructor(t *testing.T) {
	state := mock.NewState()
	ch := classHash(2)
	state.Deploy(addr(1), ch, mock.NewClass())
	d := NewDispatcher(state, mock.NewVM(blockifier.RunResult{}), testCtx(), noopFactory)

	frame, err := d.ExecuteConstructor(ch, addr(1), felt.ContractAddressZero, nil, 1000)
	require.NoError(t, err)
	mock.Verify(t, frame).Ok().InnerCallCount(0)
	require.True(t, frame.Call.Selector.Equal(felt.SelectorFromName(blockifier.ConstructorEntryPointName)))
}

func TestExecuteConstructorRejectsCalldataForEmptyConstructor(t *testing.T) {
	state := mock.NewState()
	ch := classHash(3)
	state.Deploy(addr(1), ch, mock.NewClass())
	d := NewDispatcher(state, mock.NewVM(blockifier.RunResult{}), testCtx(), noopFactory)

	_, err := d.ExecuteConstructor(ch, addr(1), felt.ContractAddressZero, []felt.Felt{felt.FromUint64(1)}, 1000)
	require.ErrorIs(t, err, blockifier.ErrInvalidArgument)
}
