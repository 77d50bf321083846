package syscalls

import (
	blockifier "github.com/NethermindEth/blockifier-go"
	"github.com/NethermindEth/blockifier-go/felt"
)

// getExecutionInfo is GetExecutionInfo's business logic. Its response is a
// pointer to a freshly allocated segment holding the block context, the
// transaction context and the immediate call's own (caller, contract
// address, selector) triple, laid out as a flat felt array matching the
// order a Cairo contract's ExecutionInfo struct destructures it in.
//
// The segment, and the signature segment it points to, are built and
// allocated afresh on every call; the pointer is not cached within a
// frame, so a contract that queries execution info more than once in a
// frame gets a new segment each time (see DESIGN.md).
func (h *HintProcessor) getExecutionInfo(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	sigWords := make([]blockifier.Word, len(h.Ctx.Account.Signature))
	for i, s := range h.Ctx.Account.Signature {
		sigWords[i] = blockifier.FeltWord(s)
	}
	sigSeg, err := vm.AllocateSegment(sigWords)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	words := []blockifier.Word{
		blockifier.FeltWord(felt.FromUint64(h.Ctx.Block.BlockNumber)),
		blockifier.FeltWord(felt.FromUint64(h.Ctx.Block.BlockTimestamp)),
		blockifier.FeltWord(h.Ctx.Account.TransactionHash),
		blockifier.FeltWord(h.Ctx.Account.Nonce),
		blockifier.FeltWord(felt.FromUint64(h.Ctx.Account.MaxFee)),
		blockifier.FeltWord(felt.FromUint64(uint64(len(h.Ctx.Account.Signature)))),
		blockifier.PointerWord(sigSeg),
		blockifier.FeltWord(felt.Felt(h.Ctx.Account.SenderAddress)),
		blockifier.FeltWord(felt.Felt(h.Call.CallerAddress)),
		blockifier.FeltWord(felt.Felt(h.Call.StorageAddress)),
		blockifier.FeltWord(felt.Felt(h.Call.Selector)),
	}

	seg, err := vm.AllocateSegment(words)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}
	return []blockifier.Word{blockifier.PointerWord(seg)}, ptr, nil
}
