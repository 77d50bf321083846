package context

// EffectLedger hands out the monotonically increasing ordinal every
// OrderedEvent and OrderedL2ToL1Message is stamped with. One ledger is
// shared by an entire call tree, and events and messages draw from the
// same counter, so ordinals follow the order in which effects were emitted
// during execution, across every frame. A frame that emits both before and
// after one of its inner calls holds ordinals on both sides of that inner
// call's, so a pre-order traversal of the CallInfo tree does not in
// general visit ordinals in increasing order.
type EffectLedger struct {
	next uint64
}

// NextOrdinal returns the next unused ordinal and advances the counter.
func (l *EffectLedger) NextOrdinal() uint64 {
	o := l.next
	l.next++
	return o
}

// Count reports how many ordinals have been allocated so far.
func (l *EffectLedger) Count() uint64 {
	return l.next
}
