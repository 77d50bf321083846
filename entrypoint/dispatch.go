package entrypoint

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/felt"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("entrypoint")

// HintProcessorFactory builds the syscall hint processor for one call
// frame. frame is the CallInfo the hint processor should mutate directly
// as it executes EmitEvent/SendMessageToL1/StorageRead/StorageWrite and
// nested CallContract/LibraryCall/Deploy syscalls, so that by the time
// VM.Run returns, frame already holds every effect the call produced
// besides its own Retdata/Failed/GasConsumed. It is implemented by package
// syscalls, and supplied to NewDispatcher by whichever package wires a
// transaction together (see package host), so that this package never
// imports syscalls directly and the two packages don't form an import
// cycle.
type HintProcessorFactory func(d *Dispatcher, call CallDescriptor, frame *CallInfo) blockifier.HintProcessor

// Dispatcher resolves a CallDescriptor to a class, bounds-checks recursion,
// invokes the VM (which draws on the shared step budget), and folds the
// result into a CallInfo. One Dispatcher is constructed per transaction and reused for
// every recursive inner call that transaction's syscalls make.
type Dispatcher struct {
	State State
	VM    blockifier.VM
	Ctx   *ctxpkg.ExecutionContext

	NewHintProcessor HintProcessorFactory
}

// State is the storage/class lookup this package depends on; it is the
// same shape as blockifier.State, restated here so this package's exported
// surface doesn't force callers to import the root package just to
// construct a Dispatcher.
type State = blockifier.State

// NewDispatcher builds a Dispatcher over state and vm, sharing ctx (and
// therefore its resource envelope, effect ledger and error stack) across
// every call the dispatcher executes.
func NewDispatcher(state State, vm blockifier.VM, ctx *ctxpkg.ExecutionContext, factory HintProcessorFactory) *Dispatcher {
	return &Dispatcher{State: state, VM: vm, Ctx: ctx, NewHintProcessor: factory}
}

// Execute resolves call to a class, enters a new recursion frame, invokes
// the VM, and returns the resulting CallInfo. A recursion-depth rejection
// is returned before the frame is entered and pushes nothing. Any other
// failure prior to or during VM execution returns a non-nil error and
// pushes a frame onto the execution context's error stack; a VM error that
// reaches the outermost frame (depth 1) is returned with the rendered error
// trace appended. A Cairo-level revert (the entry point ran to
// completion but signaled failure) is instead reported via
// CallInfo.Execution.Failed with a nil error, matching how a successful
// VM run that merely reverted is not itself a dispatch failure.
func (d *Dispatcher) Execute(call CallDescriptor) (*CallInfo, error) {
	release, err := d.Ctx.EnterCall()
	if err != nil {
		return nil, err
	}
	defer release()

	classHash, err := d.resolveClassHash(call)
	if err != nil {
		d.Ctx.PushError(call.StorageAddress, err)
		return nil, err
	}
	if d.Ctx.Account.Version == 0 && classHash.Equal(blockifier.FaultyClassHash) {
		err := fmt.Errorf("%w: %s", blockifier.ErrFaultyClass, classHash.Hex())
		d.Ctx.PushError(call.StorageAddress, err)
		return nil, err
	}
	call.ClassHash = classHash

	class, err := d.State.GetCompiledContractClass(classHash)
	if err != nil {
		wrapped := &blockifier.EntryPointExecutionError{Address: call.StorageAddress, Err: err}
		d.Ctx.PushError(call.StorageAddress, wrapped)
		return nil, wrapped
	}

	if _, ok := class.EntryPointOffset(call.EntryPointType, call.Selector); !ok {
		err := fmt.Errorf("%w: selector %s type %s", blockifier.ErrEntryPointNotFound, call.Selector.String(), call.EntryPointType)
		wrapped := &blockifier.EntryPointExecutionError{Address: call.StorageAddress, Err: err}
		d.Ctx.PushError(call.StorageAddress, wrapped)
		return nil, wrapped
	}

	frame := NewCallInfo(call)
	hints := d.NewHintProcessor(d, call, frame)

	log.Debug("executing entry point",
		"address", call.StorageAddress.Hex(),
		"class", classHash.Hex(),
		"type", call.EntryPointType.String(),
		"depth", d.Ctx.Resources.Depth(),
	)

	result, err := d.VM.Run(class, call.EntryPointType, call.Selector, call.Calldata, call.InitialGas, hints, d.Ctx.Resources)
	if err != nil {
		wrapped := &blockifier.EntryPointExecutionError{Address: call.StorageAddress, Err: err}
		d.Ctx.PushError(call.StorageAddress, wrapped)
		if d.Ctx.Resources.Depth() == 1 {
			return nil, fmt.Errorf("%w\n%s", wrapped, d.Ctx.ErrorTrace())
		}
		return nil, wrapped
	}

	frame.Execution.Retdata = result.Retdata
	frame.Execution.Failed = result.Failed
	frame.Execution.GasConsumed = result.GasConsumed

	return frame, nil
}

// resolveClassHash implements the class-resolution half of §4.2: an
// explicit ClassHash on the descriptor (library calls, deploys with a
// known class, and constructor dispatch) is used as-is; otherwise the
// class actually deployed at StorageAddress is looked up, and the zero
// class hash (no contract deployed there) is reported as
// ErrUninitializedContract.
func (d *Dispatcher) resolveClassHash(call CallDescriptor) (felt.ClassHash, error) {
	if !call.ClassHash.IsZero() {
		return call.ClassHash, nil
	}
	classHash, err := d.State.GetClassHashAt(call.StorageAddress)
	if err != nil {
		return felt.ClassHash{}, err
	}
	if classHash.IsZero() {
		return felt.ClassHash{}, fmt.Errorf("%w: %s", blockifier.ErrUninitializedContract, call.StorageAddress.Hex())
	}
	return classHash, nil
}
