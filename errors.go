package blockifier

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/blockifier-go/felt"
)

// Sentinel errors a caller can match against with errors.Is. Each
// wraps further context via fmt.Errorf's %w verb at the call site rather
// than growing new named error types, matching how the rest of this module
// reports failure.
var (
	// ErrUninitializedContract is returned when a call targets an address
	// State has no class hash bound to.
	ErrUninitializedContract = errors.New("blockifier: uninitialized contract address")

	// ErrEntryPointNotFound is returned when the resolved class exposes no
	// entry point matching the requested (type, selector) pair.
	ErrEntryPointNotFound = errors.New("blockifier: entry point not found in contract")

	// ErrFaultyClass is returned when dispatch resolves to FaultyClassHash.
	ErrFaultyClass = errors.New("blockifier: class hash is marked faulty")

	// ErrRecursionDepthExceeded is returned when entering another call
	// frame would exceed MaxRecursionDepth.
	ErrRecursionDepthExceeded = errors.New("blockifier: max recursion depth exceeded")

	// ErrOutOfSteps is returned when a frame's step consumption would
	// exceed the resource envelope's remaining step budget.
	ErrOutOfSteps = errors.New("blockifier: step budget exhausted")

	// ErrOutOfGas reports an exhausted gas counter. The syscall hint
	// processor does not return it: a syscall whose gas counter cannot
	// cover its base cost gets the OutOfGasError protocol word written
	// back instead.
	ErrOutOfGas = errors.New("blockifier: out of gas")

	// ErrUnknownSyscallSelector is returned when a hint references a
	// selector this processor does not implement.
	ErrUnknownSyscallSelector = errors.New("blockifier: unknown syscall selector")

	// ErrInvalidOrder is returned by CallInfo tree ordering checks when two
	// messages in the tree share an ordinal.
	ErrInvalidOrder = errors.New("blockifier: ordinal out of order")

	// ErrUnexpectedHoles is returned by CallInfo tree ordering checks when
	// an ordinal sequence skips a value.
	ErrUnexpectedHoles = errors.New("blockifier: ordinal sequence has a hole")

	// ErrInvalidArgument is returned when a caller-supplied argument
	// violates a precondition this module enforces directly (as opposed
	// to one enforced by the VM or a syscall handler).
	ErrInvalidArgument = errors.New("blockifier: invalid argument")

	// ErrBadSyscallPointer is returned when a syscall's resolved operand
	// pointer does not match the frame's current syscall pointer cursor,
	// meaning the running Cairo code addressed a stale or out-of-sequence
	// syscall struct instead of the next one the processor expects.
	ErrBadSyscallPointer = errors.New("blockifier: syscall pointer does not match expected cursor")

	// ErrBlockNumberOutOfRange is returned by a State implementation's
	// GetBlockHash when the requested block number is outside the range
	// the protocol allows a contract to query (too recent, or never
	// produced).
	ErrBlockNumberOutOfRange = errors.New("blockifier: block number out of range")
)

// EntryPointExecutionError wraps a failure produced while dispatching a
// single call frame (as opposed to a failure produced inside the syscalls
// that frame issued), attaching the contract address the failure occurred
// at so error-trace rendering can name it.
type EntryPointExecutionError struct {
	Address felt.ContractAddress
	Err     error
}

func (e *EntryPointExecutionError) Error() string {
	return fmt.Sprintf("blockifier: entry point execution failed at %s: %v", e.Address.Hex(), e.Err)
}

func (e *EntryPointExecutionError) Unwrap() error { return e.Err }

// SyscallExecutionError wraps a failure raised by a specific syscall
// handler, naming the selector for diagnostics.
type SyscallExecutionError struct {
	Selector string
	Err      error
}

func (e *SyscallExecutionError) Error() string {
	return fmt.Sprintf("blockifier: syscall %s failed: %v", e.Selector, e.Err)
}

func (e *SyscallExecutionError) Unwrap() error { return e.Err }
