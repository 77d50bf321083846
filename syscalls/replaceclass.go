package syscalls

import blockifier "github.com/NethermindEth/blockifier-go"

// replaceClass is ReplaceClass's business logic: it rebinds the calling
// contract's own storage address to a newly declared class hash, taking
// effect for every call to this address from this point in the
// transaction onward (including re-entrant calls back into this same
// frame later in its own execution).
func (h *HintProcessor) replaceClass(vm blockifier.VM, ptr blockifier.Pointer) ([]blockifier.Word, blockifier.Pointer, error) {
	req, next, err := readReplaceClassRequest(vm, ptr)
	if err != nil {
		return nil, blockifier.Pointer{}, err
	}

	if err := h.State.SetClassHashAt(h.Call.StorageAddress, req.ClassHash); err != nil {
		return nil, blockifier.Pointer{}, err
	}

	return nil, next, nil
}
