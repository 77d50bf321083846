package entrypoint

import (
	"fmt"
	"sort"

	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// OrderedEvent is an event emitted during a call, stamped with its position
// in the transaction's global emission order (see context.EffectLedger).
type OrderedEvent struct {
	Order uint64
	Keys  []felt.Felt
	Data  []felt.Felt
}

// OrderedL2ToL1Message is an L2->L1 message emitted during a call, stamped
// the same way as OrderedEvent.
type OrderedL2ToL1Message struct {
	Order     uint64
	ToAddress felt.Felt
	Payload   []felt.Felt
}

// CallExecution is what running one entry point actually produced: its
// return data and whether the Cairo program itself signaled failure (as
// opposed to the call never running at all, which Dispatcher.Execute
// reports as a Go error instead).
type CallExecution struct {
	Retdata     []felt.Felt
	Events      []OrderedEvent
	Messages    []OrderedL2ToL1Message
	Failed      bool
	GasConsumed uint64
}

// CallInfo is one frame of a completed call tree: the descriptor that was
// executed, what it produced, every nested call it made (in call order),
// and the storage it touched.
type CallInfo struct {
	Call      CallDescriptor
	Execution CallExecution
	InnerCalls []*CallInfo

	// StorageReadValues records, in read order, the value returned by
	// every StorageRead syscall this frame issued.
	StorageReadValues []felt.Felt

	// AccessedStorageKeys is the set of storage keys this frame read or
	// wrote, keyed by the key's canonical 32-byte form since StorageKey
	// itself (a Felt wrapping a big.Int) is not a valid Go map key.
	AccessedStorageKeys map[[32]byte]felt.StorageKey
}

// NewCallInfo builds an empty CallInfo ready to be filled in as a frame
// executes.
func NewCallInfo(call CallDescriptor) *CallInfo {
	return &CallInfo{
		Call:                call,
		AccessedStorageKeys: make(map[[32]byte]felt.StorageKey),
	}
}

// RecordStorageKey adds key to this frame's accessed-key set.
func (c *CallInfo) RecordStorageKey(key felt.StorageKey) {
	c.AccessedStorageKeys[felt.Felt(key).Bytes32()] = key
}

// Walk visits c and every descendant in pre-order (a frame before its
// inner calls, inner calls left to right), matching the order a Cairo
// contract's nested calls actually execute in.
func (c *CallInfo) Walk(visit func(*CallInfo)) {
	visit(c)
	for _, inner := range c.InnerCalls {
		inner.Walk(visit)
	}
}

// ExecutedClassHashes returns the set of distinct class hashes actually
// run anywhere in c's tree (c included), keyed by their 32-byte canonical
// form for the same reason AccessedStorageKeys is.
func (c *CallInfo) ExecutedClassHashes() map[[32]byte]felt.ClassHash {
	out := make(map[[32]byte]felt.ClassHash)
	c.Walk(func(frame *CallInfo) {
		if frame.Call.ClassHash.IsZero() {
			return
		}
		out[felt.Felt(frame.Call.ClassHash).Bytes32()] = frame.Call.ClassHash
	})
	return out
}

// SortedL2ToL1PayloadLengths returns, for every L2->L1 message anywhere in
// c's tree, the length of its payload, ordered by the message's global
// ordinal. It errors if the sorted ordinals are not a contiguous sequence
// starting at the lowest ordinal observed: ErrInvalidOrder if two messages
// share an ordinal, ErrUnexpectedHoles if the sequence skips an ordinal.
func (c *CallInfo) SortedL2ToL1PayloadLengths() ([]int, error) {
	var all []OrderedL2ToL1Message
	c.Walk(func(frame *CallInfo) {
		all = append(all, frame.Execution.Messages...)
	})
	if len(all) == 0 {
		return nil, nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Order < all[j].Order })

	lengths := make([]int, len(all))
	for i, m := range all {
		if i > 0 && all[i-1].Order == m.Order {
			return nil, fmt.Errorf("%w: two messages share ordinal %d", blockifier.ErrInvalidOrder, m.Order)
		}
		if i > 0 && m.Order != all[i-1].Order+1 {
			return nil, fmt.Errorf("%w: ordinal jumps from %d to %d", blockifier.ErrUnexpectedHoles, all[i-1].Order, m.Order)
		}
		lengths[i] = len(m.Payload)
	}
	return lengths, nil
}
