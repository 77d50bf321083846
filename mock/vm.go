package mock

import (
	"time"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// VM is a blockifier.VM double whose Run returns a canned RunResult (or
// panics, or sleeps first) without touching memory. It satisfies the
// interface's memory-cell methods as no-ops since no test built against it
// so far exercises them directly through a Dispatcher/Host path; syscall
// tests use memVM (see package syscalls) for memory-accurate coverage.
type VM struct {
	Result blockifier.RunResult
	Err    error
	Delay  time.Duration
	Panic  interface{}
}

// NewVM builds a VM double that returns result with no error.
func NewVM(result blockifier.RunResult) *VM {
	return &VM{Result: result}
}

func (v *VM) ReadFelt(blockifier.Pointer) (felt.Felt, error) { return felt.Felt{}, nil }
func (v *VM) ReadPointer(blockifier.Pointer) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, nil
}
func (v *VM) WriteFelt(blockifier.Pointer, felt.Felt) error             { return nil }
func (v *VM) WritePointer(blockifier.Pointer, blockifier.Pointer) error { return nil }
func (v *VM) AllocateSegment([]blockifier.Word) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, nil
}
func (v *VM) ResolveOperand(blockifier.Operand) (blockifier.Pointer, error) {
	return blockifier.Pointer{}, nil
}

func (v *VM) Run(blockifier.CompiledClass, blockifier.EntryPointType, felt.EntryPointSelector, []felt.Felt, uint64, blockifier.HintProcessor, blockifier.StepTracker) (blockifier.RunResult, error) {
	if v.Panic != nil {
		panic(v.Panic)
	}
	if v.Delay > 0 {
		time.Sleep(v.Delay)
	}
	return v.Result, v.Err
}
