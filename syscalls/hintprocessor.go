package syscalls

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	ctxpkg "github.com/NethermindEth/blockifier-go/context"
	"github.com/NethermindEth/blockifier-go/entrypoint"
	"github.com/NethermindEth/blockifier-go/felt"
	"github.com/NethermindEth/blockifier-go/gascost"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("syscalls")

// HintProcessor is the VM callback for one call frame: it intercepts every
// syscall hint the frame's Cairo program executes, charges gas against the
// frame's own gas counter, and mutates Frame directly (its events,
// messages, inner calls and accessed storage keys) as each syscall runs.
// One HintProcessor is constructed per call frame by Dispatcher's
// HintProcessorFactory; its Dispatcher field is the very same Dispatcher
// that constructed it, so CallContract/LibraryCall/Deploy can recurse back
// into ordinary entry-point dispatch.
type HintProcessor struct {
	State      entrypoint.State
	Ctx        *ctxpkg.ExecutionContext
	Call       entrypoint.CallDescriptor
	Frame      *entrypoint.CallInfo
	Dispatcher *entrypoint.Dispatcher
	GasCosts   *gascost.Table

	// syscallPtr is the pointer the next syscall hint must resolve to; nil
	// until the frame's first syscall, which establishes the cursor
	// unconditionally. Every later syscall's resolved operand must match
	// it exactly, catching a compiled hint table that addresses a stale or
	// out-of-sequence syscall struct.
	syscallPtr *blockifier.Pointer

	// secp256k1Points is the append-only vector of affine points the
	// Secp256k1* syscalls index into: a syscall that "returns a point"
	// actually returns its index in this vector, and later syscalls
	// dereference by that index rather than passing raw coordinates
	// back and forth across the VM boundary.
	secp256k1Points []secp256k1Point
}

// NewHintProcessor builds a HintProcessor for one call frame. It matches
// entrypoint.HintProcessorFactory's shape and is the function a
// transaction-level wiring package (see package host) supplies to
// entrypoint.NewDispatcher, since entrypoint cannot import this package
// without an import cycle (this package imports entrypoint, to recurse
// into Dispatcher.Execute for CallContract/LibraryCall/Deploy).
func NewHintProcessor(costs *gascost.Table) entrypoint.HintProcessorFactory {
	return func(d *entrypoint.Dispatcher, call entrypoint.CallDescriptor, frame *entrypoint.CallInfo) blockifier.HintProcessor {
		return &HintProcessor{
			State:      d.State,
			Ctx:        d.Ctx,
			Call:       call,
			Frame:      frame,
			Dispatcher: d,
			GasCosts:   costs,
		}
	}
}

// envelopeHeaderWords is the fixed prefix every syscall's argument block
// carries ahead of its own typed request: which syscall this is, and the
// caller's remaining gas counter.
const envelopeHeaderWords = 2

// ExecuteSyscall implements blockifier.HintProcessor. It reads the
// envelope header (selector, gas counter), dispatches to the matching
// handler, and writes back the envelope's updated gas counter followed by
// the typed response — mirroring the request/response wrapper a compiled
// Cairo syscall hint actually exchanges with the VM.
func (h *HintProcessor) ExecuteSyscall(vm blockifier.VM, op blockifier.Operand) (blockifier.Pointer, error) {
	ptr, err := vm.ResolveOperand(op)
	if err != nil {
		return blockifier.Pointer{}, fmt.Errorf("resolving syscall operand: %w", err)
	}

	if h.syscallPtr != nil && (ptr != *h.syscallPtr) {
		return blockifier.Pointer{}, blockifier.ErrBadSyscallPointer
	}

	selectorFelt, err := vm.ReadFelt(ptr)
	if err != nil {
		return blockifier.Pointer{}, err
	}
	selector := Selector(selectorFelt.Uint64())

	gasFelt, err := vm.ReadFelt(ptr.Add(1))
	if err != nil {
		return blockifier.Pointer{}, err
	}
	gasCounter := gasFelt.Uint64()

	requestPtr := ptr.Add(envelopeHeaderWords)

	baseCost, ok := h.GasCosts.Cost(selector.String())
	if !ok {
		return blockifier.Pointer{}, fmt.Errorf("%w: %s", blockifier.ErrUnknownSyscallSelector, selector)
	}
	if gasCounter < baseCost {
		return h.commitSyscallPtr(h.writeFailure(vm, ptr, gasCounter, &wireFailure{word: blockifier.OutOfGasError}))
	}
	gasCounter -= baseCost

	log.Trace("executing syscall", "selector", selector.String(), "frame", h.Call.StorageAddress.Hex())

	respWords, nextPtr, err := h.dispatch(vm, selector, requestPtr, &gasCounter)
	if err != nil {
		var wireErr *wireFailure
		if asWireFailure(err, &wireErr) {
			return h.commitSyscallPtr(h.writeFailure(vm, ptr, gasCounter, wireErr))
		}
		return blockifier.Pointer{}, &blockifier.SyscallExecutionError{Selector: selector.String(), Err: err}
	}

	if err := vm.WriteFelt(ptr.Add(1), felt.FromUint64(gasCounter)); err != nil {
		return blockifier.Pointer{}, err
	}
	for i, w := range respWords {
		if w.IsPointer {
			if err := vm.WritePointer(requestPtr.Add(i), w.Pointer); err != nil {
				return blockifier.Pointer{}, err
			}
		} else if err := vm.WriteFelt(requestPtr.Add(i), w.Felt); err != nil {
			return blockifier.Pointer{}, err
		}
	}

	return h.commitSyscallPtr(nextPtr, nil)
}

// commitSyscallPtr records next as the pointer the frame's next syscall
// must resolve to, then passes its arguments through unchanged; it exists
// so every ExecuteSyscall return path (success or protocol-level failure)
// advances the cursor the same way, per the monotonicity check at entry.
func (h *HintProcessor) commitSyscallPtr(next blockifier.Pointer, err error) (blockifier.Pointer, error) {
	if err == nil {
		h.syscallPtr = &next
	}
	return next, err
}

// writeFailure writes a revert response in place of a normal one: the
// envelope's gas counter as it stands when the failure is raised
// (untouched for an out-of-gas failure; otherwise after the base cost and,
// for a failed inner call, the inner call's gas_consumed) followed by the
// error_data. A single protocol error word (OutOfGasError and friends) is
// written directly, matching how a Cairo contract's panic handler
// recognizes a reverted syscall by name; a SyscallError carrying an inner
// call's retdata is written as a Span<felt252> (length, segment pointer),
// the same shape every other multi-word response in this package uses.
func (h *HintProcessor) writeFailure(vm blockifier.VM, ptr blockifier.Pointer, gasCounter uint64, wireErr *wireFailure) (blockifier.Pointer, error) {
	if err := vm.WriteFelt(ptr.Add(1), felt.FromUint64(gasCounter)); err != nil {
		return blockifier.Pointer{}, err
	}
	requestPtr := ptr.Add(envelopeHeaderWords)

	if wireErr.data != nil {
		seg, err := writeSegment(vm, wireErr.data)
		if err != nil {
			return blockifier.Pointer{}, err
		}
		if err := vm.WriteFelt(requestPtr, felt.FromUint64(uint64(len(wireErr.data)))); err != nil {
			return blockifier.Pointer{}, err
		}
		if err := vm.WritePointer(requestPtr.Add(1), seg); err != nil {
			return blockifier.Pointer{}, err
		}
		return requestPtr.Add(2), nil
	}

	if err := vm.WriteFelt(requestPtr, wireErr.word); err != nil {
		return blockifier.Pointer{}, err
	}
	return requestPtr.Add(1), nil
}

// wireFailure is returned by a handler to request a protocol-level revert
// response rather than a Go-level dispatch error: either a single
// protocol error word (word), or the arbitrary error_data of a
// SyscallError raised by a failed inner call (data).
type wireFailure struct {
	word felt.Felt
	data []felt.Felt
}

func (w *wireFailure) Error() string {
	if w.data != nil {
		return fmt.Sprintf("syscall reverted: inner call failed with %d retdata words", len(w.data))
	}
	return "syscall reverted: " + w.word.Hex()
}

func asWireFailure(err error, target **wireFailure) bool {
	wf, ok := err.(*wireFailure)
	if ok {
		*target = wf
	}
	return ok
}

// dispatch runs the selector-specific handler, returning the words to
// write as its response (and the pointer just past the argument block the
// handler consumed).
func (h *HintProcessor) dispatch(vm blockifier.VM, selector Selector, ptr blockifier.Pointer, gas *uint64) ([]blockifier.Word, blockifier.Pointer, error) {
	switch selector {
	case SelectorStorageRead:
		return h.storageRead(vm, ptr)
	case SelectorStorageWrite:
		return h.storageWrite(vm, ptr)
	case SelectorEmitEvent:
		return h.emitEvent(vm, ptr)
	case SelectorSendMessageToL1:
		return h.sendMessageToL1(vm, ptr)
	case SelectorCallContract:
		return h.callContract(vm, ptr, gas)
	case SelectorLibraryCall:
		return h.libraryCall(vm, ptr, gas)
	case SelectorLibraryCallL1Handler:
		return h.libraryCallL1Handler(vm, ptr, gas)
	case SelectorDeploy:
		return h.deploy(vm, ptr, gas)
	case SelectorGetExecutionInfo:
		return h.getExecutionInfo(vm, ptr)
	case SelectorReplaceClass:
		return h.replaceClass(vm, ptr)
	case SelectorGetBlockHash:
		return h.getBlockHash(vm, ptr)
	case SelectorKeccak:
		return h.keccak(vm, ptr)
	case SelectorSecp256k1New:
		return h.secp256k1New(vm, ptr)
	case SelectorSecp256k1Add:
		return h.secp256k1Add(vm, ptr)
	case SelectorSecp256k1Mul:
		return h.secp256k1Mul(vm, ptr)
	case SelectorSecp256k1GetPointFromX:
		return h.secp256k1GetPointFromX(vm, ptr)
	case SelectorSecp256k1GetXy:
		return h.secp256k1GetXy(vm, ptr)
	default:
		return nil, blockifier.Pointer{}, fmt.Errorf("%w: %s", blockifier.ErrUnknownSyscallSelector, selector)
	}
}
