package syscalls

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/entrypoint"
)

// emitEvent is EmitEvent's business logic: it stamps the event with the
// next global ordinal from the transaction's shared EffectLedger and
// appends it to the frame's own event list. Ordinals therefore follow the
// order of emission across the whole call tree, however deeply nested the
// emitting frame was.
func (h *HintProcessor) emitEvent(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readEmitEventRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	h.Frame.Execution.Events = append(h.Frame.Execution.Events, entrypoint.OrderedEvent{
		Order: h.Ctx.Ledger.NextOrdinal(),
		Keys:  req.Keys,
		Data:  req.Data,
	})

	return nil, next, nil
}

// sendMessageToL1 is SendMessageToL1's business logic: same ordinal
// discipline as emitEvent, for the frame's L2->L1 message list.
func (h *HintProcessor) sendMessageToL1(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readSendMessageToL1Request(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	h.Frame.Execution.Messages = append(h.Frame.Execution.Messages, entrypoint.OrderedL2ToL1Message{
		Order:     h.Ctx.Ledger.NextOrdinal(),
		ToAddress: req.ToAddress,
		Payload:   req.Payload,
	})

	return nil, next, nil
}
