package syscalls

import (
	"errors"

	blockifier "github.com/NethermindEth/blockifier-go"
)

// getBlockHash is GetBlockHash's business logic: a thin pass-through to
// State.GetBlockHash, which enforces how far behind the current block a
// query may reach. A query outside that range is a protocol-level revert
// (BlockNumberOutOfRangeError), not a host-level dispatch failure; any
// other error still aborts the frame.
func (h *HintProcessor) getBlockHash(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readGetBlockHashRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	hash, err := h.State.GetBlockHash(req.BlockNumber)
	if errors.Is(err, blockifier.ErrBlockNumberOutOfRange) {
		return nil, blockifier.Pointer{}, &wireFailure{word: blockifier.BlockNumberOutOfRangeError}
	}
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	return []blockifier.Word{blockifier.FeltWord(hash)}, next, nil
}
