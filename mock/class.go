package mock

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// Class is a blockifier.CompiledClass double: a flat map of (type,
// selector) pairs to offsets, plus an optional constructor selector.
type Class struct {
	Offsets     map[classKey]int
	Constructor *felt.EntryPointSelector
}

type classKey struct {
	entryPointType blockifier.EntryPointType
	selector       [32]byte
}

// NewClass builds an empty Class double.
func NewClass() *Class {
	return &Class{Offsets: map[classKey]int{}}
}

// WithEntryPoint registers selector at offset for entryPointType.
func (c *Class) WithEntryPoint(entryPointType blockifier.EntryPointType, selector felt.EntryPointSelector, offset int) *Class {
	c.Offsets[classKey{entryPointType, felt.Felt(selector).Bytes32()}] = offset
	return c
}

// WithConstructor registers an explicit constructor selector.
func (c *Class) WithConstructor(selector felt.EntryPointSelector) *Class {
	c.Constructor = &selector
	return c
}

func (c *Class) EntryPointOffset(entryPointType blockifier.EntryPointType, selector felt.EntryPointSelector) (int, bool) {
	offset, ok := c.Offsets[classKey{entryPointType, felt.Felt(selector).Bytes32()}]
	return offset, ok
}

func (c *Class) ConstructorSelector() (felt.EntryPointSelector, bool) {
	if c.Constructor == nil {
		return felt.EntryPointSelector{}, false
	}
	return *c.Constructor, true
}
