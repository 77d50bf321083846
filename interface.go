// Package blockifier defines the entry-point execution core of a StarkNet
// contract execution engine: call dispatch and recursion, a syscall hint
// processor, and the resource/ordering bookkeeping shared across a call
// tree. The Cairo VM, concrete state storage and transaction-level
// orchestration are consumed as interfaces (State, VM) and are out of
// scope for this module.
package blockifier

import "github.com/NethermindEth/blockifier-go/felt"

// State is the storage/class collaborator consumed by the execution core.
// Implementations back it with whatever persistence layer a given
// transaction-processing pipeline uses; this package never persists
// anything itself.
type State interface {
	// GetClassHashAt returns the class hash deployed at addr, or the zero
	// ClassHash if addr has no contract deployed.
	GetClassHashAt(addr felt.ContractAddress) (felt.ClassHash, error)

	// GetCompiledContractClass returns the compiled class for classHash.
	// It is an error to ask for an undeclared class.
	GetCompiledContractClass(classHash felt.ClassHash) (CompiledClass, error)

	// GetStorageAt reads a single storage slot.
	GetStorageAt(addr felt.ContractAddress, key felt.StorageKey) (felt.Felt, error)

	// SetStorageAt writes a single storage slot.
	SetStorageAt(addr felt.ContractAddress, key felt.StorageKey, value felt.Felt) error

	// SetClassHashAt rebinds addr to classHash, used by Deploy and
	// ReplaceClass.
	SetClassHashAt(addr felt.ContractAddress, classHash felt.ClassHash) error

	// GetBlockHash returns the hash of the block at blockNumber, as
	// consumed by the GetBlockHash syscall. Only blocks at least ten
	// blocks behind the current one are queryable; implementations report
	// that restriction as ErrBlockNumberOutOfRange (wrapped or bare, so
	// errors.Is still matches) rather than this module enforcing a
	// hardcoded constant it has no way to validate against the chain's
	// actual finality window. The GetBlockHash syscall turns that
	// sentinel into the BlockNumberOutOfRangeError protocol word instead
	// of aborting the frame; any other error still aborts it.
	GetBlockHash(blockNumber uint64) (felt.Felt, error)
}

// CompiledClass is the opaque, already-compiled representation of a
// contract class, as returned by State.GetCompiledContractClass. Parsing of
// the on-disk ABI/bytecode representation happens entirely outside this
// module; this module only needs to locate entry points within it.
type CompiledClass interface {
	// EntryPointOffset resolves a (type, selector) pair to a VM-internal
	// program offset. ok is false if the class exposes no such entry point.
	EntryPointOffset(entryPointType EntryPointType, selector felt.EntryPointSelector) (offset int, ok bool)

	// ConstructorSelector returns the class's constructor selector, if any.
	ConstructorSelector() (felt.EntryPointSelector, bool)
}

// Register names an addressing base for AP/FP-relative operand resolution.
type Register int

const (
	// RegisterAP addresses relative to the VM's allocation pointer.
	RegisterAP Register = iota
	// RegisterFP addresses relative to the VM's frame pointer.
	RegisterFP
)

// Operand is a CASM result-expression, as deserialized alongside a compiled
// hint: either a plain dereference of a register cell, or that cell plus an
// immediate offset. It is how a syscall hint locates the start of its
// argument block in VM memory.
type Operand struct {
	Register Register
	CellOffset int
	// ImmediateOffset is added to the dereferenced cell when non-nil; a nil
	// ImmediateOffset means the operand is a plain Deref.
	ImmediateOffset *int
}

// Pointer is a relocatable VM memory address: a segment index plus an
// offset within it.
type Pointer struct {
	Segment int
	Offset  int
}

// Add returns the pointer advanced by n cells within the same segment.
func (p Pointer) Add(n int) Pointer {
	return Pointer{Segment: p.Segment, Offset: p.Offset + n}
}

// Word is a single VM memory cell: either a field element or a relocatable
// pointer, never both.
type Word struct {
	IsPointer bool
	Felt      felt.Felt
	Pointer   Pointer
}

// FeltWord wraps a field element as a memory cell.
func FeltWord(f felt.Felt) Word { return Word{Felt: f} }

// PointerWord wraps a relocatable pointer as a memory cell.
func PointerWord(p Pointer) Word { return Word{IsPointer: true, Pointer: p} }

// VM is the Cairo virtual machine collaborator consumed by the execution
// core: it can read/write typed memory cells at a cursor, allocate
// read-only segments, resolve AP/FP-relative operands, and drive a
// compiled entry point to completion while dispatching hint callbacks to a
// HintProcessor. Program loading, the memory model's internal layout and
// Cairo opcode execution are entirely the VM's concern and out of scope
// here.
type VM interface {
	ReadFelt(ptr Pointer) (felt.Felt, error)
	ReadPointer(ptr Pointer) (Pointer, error)
	WriteFelt(ptr Pointer, v felt.Felt) error
	WritePointer(ptr Pointer, v Pointer) error

	// AllocateSegment writes values into a fresh read-only segment and
	// returns its start pointer.
	AllocateSegment(values []Word) (Pointer, error)

	// ResolveOperand computes the memory address an Operand designates.
	ResolveOperand(op Operand) (Pointer, error)

	// Run drives class's entry point to completion, dispatching every
	// protocol hint it executes to hints. steps tracks the shared step
	// budget and is consumed as the program runs; RunResult.StepsUsed
	// reports what this frame alone consumed.
	Run(class CompiledClass, entryPointType EntryPointType, selector felt.EntryPointSelector, calldata []felt.Felt, initialGas uint64, hints HintProcessor, steps StepTracker) (RunResult, error)
}

// StepTracker is the subset of the resource envelope the VM needs in order
// to halt a frame once its step budget is exhausted.
type StepTracker interface {
	ConsumeStep() bool // returns false once the budget is exhausted
}

// RunResult is what a VM.Run call reports about the frame it just executed.
type RunResult struct {
	Retdata      []felt.Felt
	Failed       bool
	GasConsumed  uint64
	StepsUsed    int
}

// HintProcessor is the callback the VM drives on every protocol hint it
// encounters. It is implemented by package syscalls's HintProcessor.
type HintProcessor interface {
	// ExecuteSyscall handles one syscall hint whose argument block starts
	// at the address designated by op, returning the pointer the frame's
	// next syscall is expected at: just past the request block after a
	// handled syscall, or just past the written failure words after a
	// reverted one.
	ExecuteSyscall(vm VM, op Operand) (Pointer, error)
}
