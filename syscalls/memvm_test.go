package syscalls

import (
	"fmt"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// memVM is a minimal in-memory blockifier.VM double for exercising
// HintProcessor.ExecuteSyscall end to end: segment 0 is the "current
// frame" buffer the test writes a syscall's argument block into;
// AllocateSegment appends a fresh segment a test can read back.
type memVM struct {
	segments [][]blockifier.Word
}

func newMemVM(frame []blockifier.Word) *memVM {
	return &memVM{segments: [][]blockifier.Word{frame}}
}

func (v *memVM) cell(ptr blockifier.Pointer) (*blockifier.Word, error) {
	if ptr.Segment < 0 || ptr.Segment >= len(v.segments) {
		return nil, fmt.Errorf("segment %d out of range", ptr.Segment)
	}
	seg := v.segments[ptr.Segment]
	if ptr.Offset < 0 || ptr.Offset >= len(seg) {
		return nil, fmt.Errorf("offset %d out of range in segment %d", ptr.Offset, ptr.Segment)
	}
	return &seg[ptr.Offset], nil
}

func (v *memVM) ReadFelt(ptr blockifier.Pointer) (felt.Felt, error) {
	c, err := v.cell(ptr)
	if err != nil {
		return felt.Felt{}, err
	}
	return c.Felt, nil
}

func (v *memVM) ReadPointer(ptr blockifier.Pointer) (blockifier.Pointer, error) {
	c, err := v.cell(ptr)
	if err != nil {
		return blockifier.Pointer{}, err
	}
	return c.Pointer, nil
}

func (v *memVM) WriteFelt(ptr blockifier.Pointer, f felt.Felt) error {
	v.growTo(ptr)
	c, err := v.cell(ptr)
	if err != nil {
		return err
	}
	*c = blockifier.FeltWord(f)
	return nil
}

func (v *memVM) WritePointer(ptr blockifier.Pointer, p blockifier.Pointer) error {
	v.growTo(ptr)
	c, err := v.cell(ptr)
	if err != nil {
		return err
	}
	*c = blockifier.PointerWord(p)
	return nil
}

// growTo extends segment 0 so writes past the initial frame (the response
// overwriting the request's own cells) succeed.
func (v *memVM) growTo(ptr blockifier.Pointer) {
	for ptr.Segment >= len(v.segments) {
		v.segments = append(v.segments, nil)
	}
	for len(v.segments[ptr.Segment]) <= ptr.Offset {
		v.segments[ptr.Segment] = append(v.segments[ptr.Segment], blockifier.Word{})
	}
}

func (v *memVM) AllocateSegment(values []blockifier.Word) (blockifier.Pointer, error) {
	id := len(v.segments)
	v.segments = append(v.segments, append([]blockifier.Word{}, values...))
	return blockifier.Pointer{Segment: id, Offset: 0}, nil
}

func (v *memVM) ResolveOperand(op blockifier.Operand) (blockifier.Pointer, error) {
	off := op.CellOffset
	if op.ImmediateOffset != nil {
		off += *op.ImmediateOffset
	}
	return blockifier.Pointer{Segment: 0, Offset: off}, nil
}

func (v *memVM) Run(blockifier.CompiledClass, blockifier.EntryPointType, felt.EntryPointSelector, []felt.Felt, uint64, blockifier.HintProcessor, blockifier.StepTracker) (blockifier.RunResult, error) {
	return blockifier.RunResult{}, fmt.Errorf("memVM.Run is not used by syscalls tests")
}

func feltWords(vs ...uint64) []blockifier.Word {
	out := make([]blockifier.Word, len(vs))
	for i, v := range vs {
		out[i] = blockifier.FeltWord(felt.FromUint64(v))
	}
	return out
}
